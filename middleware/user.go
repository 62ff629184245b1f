package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/andrewpaige1/promptdec-api/config"
	"github.com/andrewpaige1/promptdec-api/models"
	"github.com/andrewpaige1/promptdec-api/repository"
	"github.com/andrewpaige1/promptdec-api/utils"
)

type contextKey string

const userKey contextKey = "user"

// UserStore provisions users on first sight.
type UserStore interface {
	EnsureUser(ctx context.Context, p repository.Profile) (models.User, bool, error)
}

// SyncUser resolves the caller for every request: the subject of a
// validated bearer token, or the configured test user when no token was
// sent and that fallback is allowed. The user row is created on first use
// and stored in the request context.
func SyncUser(store UserStore, cfg config.Config, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, ok := profileFromRequest(r, cfg)
			if !ok {
				writeUnauthorized(w, "authentication required")
				return
			}

			user, created, err := store.EnsureUser(r.Context(), profile)
			if err != nil {
				log.Error("failed to provision user", zap.String("user_id", profile.ID), zap.Error(err))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"internal_error","detail":"internal server error"}` + "\n"))
				return
			}
			if created {
				log.Info("created new user", zap.String("user_id", user.ID))
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), &user)))
		})
	}
}

func profileFromRequest(r *http.Request, cfg config.Config) (repository.Profile, bool) {
	claims, ok := utils.TokenClaims(r.Context())
	if !ok {
		if !cfg.AllowTestUser {
			return repository.Profile{}, false
		}
		return repository.Profile{ID: cfg.TestUserID}, true
	}

	subject, ok := utils.TokenSubject(r.Context())
	if !ok {
		return repository.Profile{}, false
	}
	profile := repository.Profile{ID: subject}
	if custom, ok := claims.CustomClaims.(*CustomClaims); ok && custom != nil {
		profile.GitHubUsername = nonEmpty(custom.Nickname)
		profile.DisplayName = nonEmpty(custom.Name)
		profile.AvatarURL = nonEmpty(custom.Picture)
	}
	return profile, true
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// UserFromContext returns the caller resolved by SyncUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

// UserIDFromContext returns the caller's id, or "" outside SyncUser.
func UserIDFromContext(ctx context.Context) string {
	if user, ok := UserFromContext(ctx); ok {
		return user.ID
	}
	return ""
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
