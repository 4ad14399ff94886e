package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/config"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/repository"
	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/service"
)

var adminInput service.UserInput

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator or promote an existing user",
	Long: `Creates an administrator account in the configured database.
If a user with the email already exists it is promoted and keeps its password.

	hbnb create-admin --email admin@hbnb.io --password secret
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func(cfg *config.Config, db *gorm.DB, logger *slog.Logger) error {
			if err := database.RunMigrations(db, cfg.DatabaseDriver, logger); err != nil {
				return err
			}

			facade := service.NewFacade(repository.NewGormRepositories(db), logger)
			admin, created, err := service.EnsureAdmin(facade, adminInput)
			if err != nil {
				return err
			}

			verb := "promoted"
			if created {
				verb = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Administrator %s %s (%s)\n", admin.Email, verb, admin.ID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(createAdminCmd)

	createAdminCmd.Flags().StringVar(&adminInput.Email, "email", "", "administrator email")
	createAdminCmd.Flags().StringVar(&adminInput.Password, "password", "", "administrator password")
	createAdminCmd.Flags().StringVar(&adminInput.FirstName, "first-name", "Admin", "first name")
	createAdminCmd.Flags().StringVar(&adminInput.LastName, "last-name", "", "last name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
