// Command liturgia is the back office CLI: it normalizes lectionary
// citations, lints citation files, imports liturgies and seeds admin
// accounts.
package main

import (
	"fmt"
	"os"

	"liturgia/config"
	"liturgia/database"
	"liturgia/logging"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "liturgia",
		Short:        "Liturgia back office tools",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newNormalizeCmd())
	rootCmd.AddCommand(newLintCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newSeedAdminCmd())
	return rootCmd
}

// openDatabase opens the server's database. The returned func closes it.
func openDatabase(cfg *config.Config) (*gorm.DB, func(), error) {
	log, err := logging.New(cfg.AppEnv)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, func() {
		_ = database.Close(db)
		_ = log.Sync()
	}, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
