package main

import (
	"errors"
	"fmt"
	"os"

	"liturgia/config"
	"liturgia/services"

	"github.com/spf13/cobra"
)

func newSeedAdminCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an admin account or reset its password",
		Long: `Creates the admin account, or resets the password of an existing user
and grants it admin rights. The database is the one the server uses
(.env, config.toml and environment variables). The password may come from
LITURGIA_ADMIN_PASSWORD instead of the flag.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("LITURGIA_ADMIN_PASSWORD")
			}
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, closeDB, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			user, created, err := services.NewUserService(db).EnsureAdmin(username, password)
			if err != nil {
				return err
			}

			action := "updated"
			if created {
				action = "created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %q %s (id %d)\n", user.Username, action, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Admin username")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (min. 8 characters)")
	return cmd
}
