package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"revamp/internal/config"
	"revamp/internal/infrastructure/identity"
	"revamp/internal/ports/output"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative tasks",
}

var grantUID string

var adminGrantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Give a user the admin role",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCore(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()
		if err := c.userService(nil).GrantAdmin(cmd.Context(), grantUID); err != nil {
			return fmt.Errorf("grant admin to %s: %w", grantUID, err)
		}
		logger.Info("admin role granted", zap.String("uid", grantUID))
		return nil
	},
}

var adminRecomputeTiersCmd = &cobra.Command{
	Use:   "recompute-tiers",
	Short: "Re-derive every user's tier from their points",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCore(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()
		n, err := c.userService(nil).RecomputeTiers(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info("tiers recomputed", zap.Int("changed", n))
		return nil
	},
}

var (
	tokenUID   string
	tokenEmail string
	tokenName  string
	tokenAdmin bool
	tokenTTL   time.Duration
)

var adminTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development bearer token (AUTH_MODE=jwt)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Auth.Mode != config.AuthJWT {
			return fmt.Errorf("tokens can only be issued when AUTH_MODE=%s", config.AuthJWT)
		}
		if cfg.IsProduction() {
			return fmt.Errorf("tokens cannot be issued in production")
		}
		token, err := identity.NewJWT(cfg.Auth.JWTSecret, tokenTTL).Issue(output.Identity{
			UID:     tokenUID,
			Email:   tokenEmail,
			Name:    tokenName,
			IsAdmin: tokenAdmin,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	adminGrantCmd.Flags().StringVar(&grantUID, "uid", "", "user id")
	_ = adminGrantCmd.MarkFlagRequired("uid")

	adminTokenCmd.Flags().StringVar(&tokenUID, "uid", "", "user id")
	adminTokenCmd.Flags().StringVar(&tokenEmail, "email", "", "email claim")
	adminTokenCmd.Flags().StringVar(&tokenName, "name", "", "name claim")
	adminTokenCmd.Flags().BoolVar(&tokenAdmin, "admin", false, "set the admin claim")
	adminTokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	_ = adminTokenCmd.MarkFlagRequired("uid")

	adminCmd.AddCommand(adminGrantCmd, adminRecomputeTiersCmd, adminTokenCmd)
}
