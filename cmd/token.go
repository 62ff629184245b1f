package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andrewpaige1/promptdec-api/auth"
)

var tokenOpts auth.TokenOptions

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development bearer token signed with JWT_SECRET_KEY",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := tokenOpts
		opts.Secret = cfg.JWTSecret
		opts.Issuer = cfg.Issuer
		opts.Audience = cfg.Audience

		token, err := auth.CreateToken(opts)
		if err != nil {
			return err
		}
		// Read it back the way the server will.
		claims, err := auth.ParseToken(token, cfg.JWTSecret, cfg.Issuer, cfg.Audience)
		if err != nil {
			return err
		}
		log.Info("token issued",
			zap.String("subject", claims.Subject),
			zap.Time("expires_at", claims.ExpiresAt.Time))

		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenOpts.Subject, "subject", "", "User id to put in the sub claim (required)")
	tokenCmd.Flags().StringVar(&tokenOpts.Name, "name", "", "Display name claim")
	tokenCmd.Flags().StringVar(&tokenOpts.Nickname, "nickname", "", "GitHub username claim")
	tokenCmd.Flags().StringVar(&tokenOpts.Picture, "picture", "", "Avatar URL claim")
	tokenCmd.Flags().DurationVar(&tokenOpts.TTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")
}
