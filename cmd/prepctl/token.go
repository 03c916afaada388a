package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"placement-backend/internal/shared/auth"
	"placement-backend/internal/shared/config"
)

func newTokenCmd() *cobra.Command {
	var (
		sub   string
		email string
		name  string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development access token with JWT_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.Env, ttl)
			if err != nil {
				return err
			}
			token, err := issuer.Sign(sub, email, name)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&sub, "sub", "", "subject (user id)")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&name, "name", "", "name claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
