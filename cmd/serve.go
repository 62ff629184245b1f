package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andrewpaige1/promptdec-api/config"
	"github.com/andrewpaige1/promptdec-api/handlers"
	"github.com/andrewpaige1/promptdec-api/metrics"
	"github.com/andrewpaige1/promptdec-api/repository"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the store, seed default templates and serve the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.Connect(cfg, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	defer sqlDB.Close()

	if err := config.Migrate(db); err != nil {
		return err
	}

	repo := repository.New(db)
	added, err := repo.SeedDefaultTemplates(ctx)
	if err != nil {
		return fmt.Errorf("seed templates: %w", err)
	}
	if added > 0 {
		log.Info("seeded default templates", zap.Int("count", added))
	}

	router, err := handlers.NewRouter(&handlers.DBHandler{
		Store:   repo,
		Log:     log,
		Metrics: metrics.NewRecorder(),
		Version: version,
	}, cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening",
			zap.String("addr", cfg.Addr),
			zap.String("version", version),
			zap.Bool("bearer_tokens", cfg.JWTSecret != ""),
			zap.Bool("test_user", cfg.AllowTestUser),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
