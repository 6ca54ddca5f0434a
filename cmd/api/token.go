package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"payguard/internal/auth"
	"payguard/internal/config"
)

func tokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing",
		Long: `Mint a bearer token signed with JWT_SECRET_KEY.

Examples:
  payguard token
  payguard token --user 6f1c2d8e-3b4a-4c5d-9e0f-1a2b3c4d5e6f --ttl 1h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load configuration: %w", err)
			}

			id := uuid.New()
			if userID != "" {
				if id, err = uuid.Parse(userID); err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
			}

			token, err := auth.GenerateJWT(cfg.JWTSecretKey, id, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user:  %s\ntoken: %s\n", id, token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id to embed (random when empty)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}
