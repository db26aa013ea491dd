package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"liturgia/config"
	"liturgia/services"
	"liturgia/verseparser"

	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-liturgy <file.json>",
		Short: "Load daily liturgies from a JSON file",
		Long: `Reads a JSON array of liturgies, each with a day (YYYY-MM-DD), a title,
a color and its readings, and saves them. An existing day is replaced.
Entries that fail validation are reported and skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			var entries []services.LiturgyInput
			if err := json.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Found %d liturgies\n", len(entries))
			if dryRun {
				return checkLiturgies(out, entries)
			}
			if len(entries) == 0 {
				return nil
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

			liturgies := services.NewLiturgyService(db, verseparser.New(verseparser.PortugueseBooks), cfg.LookupVersion)
			failed := 0
			for i, in := range entries {
				l, err := liturgies.Upsert(in)
				if err != nil {
					failed++
					fmt.Fprintf(out, "#%d %s: %v\n", i+1, in.Day, err)
					continue
				}
				fmt.Fprintf(out, "%s %s (%d readings)\n", l.Day, l.Title, len(l.Readings))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d liturgies could not be imported", failed, len(entries))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse the file without writing to the database")
	return cmd
}

// checkLiturgies validates entries without saving them.
func checkLiturgies(out io.Writer, entries []services.LiturgyInput) error {
	failed := 0
	for i, in := range entries {
		if err := services.ValidateLiturgy(&in); err != nil {
			failed++
			fmt.Fprintf(out, "#%d %s: %v\n", i+1, in.Day, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d liturgies are invalid", failed, len(entries))
	}
	return nil
}
