package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/service"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrator account management",
	}

	var req dto.AdminCreateRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create the store administrator",
		Long: `Creates the single administrator account. Unlike the HTTP bootstrap
endpoint this command also works in production. It fails if an admin
already exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := dto.Check(req); err != nil {
				return err
			}

			rt, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.close()

			tokens, err := auth.NewTokenManager(rt.cfg.Auth.JWTSecret, rt.cfg.Auth.SessionTTL())
			if err != nil {
				return err
			}
			authService := service.NewAuthService(*rt.cfg, service.AuthDependencies{
				UserRepo:    rt.users,
				AdminRepo:   rt.admins,
				ProductRepo: rt.products,
				CartStore:   rt.carts,
				Tokens:      tokens,
				Logger:      rt.logger,
			})

			admin, err := authService.BootstrapAdmin(cmd.Context(), service.Credentials{
				Name:     req.Name,
				Email:    req.Email,
				Password: req.Password,
			})
			if err != nil {
				return err
			}
			rt.logger.Info("admin ready", zap.String("admin_id", admin.ID))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created admin %s <%s>\n", admin.ID, admin.Email)
			return err
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "Admin display name")
	create.Flags().StringVar(&req.Email, "email", "", "Admin login email")
	create.Flags().StringVar(&req.Password, "password", "", "Admin password")
	for _, flag := range []string{"name", "email", "password"} {
		_ = create.MarkFlagRequired(flag)
	}

	cmd.AddCommand(create)
	return cmd
}
