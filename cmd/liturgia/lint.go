package main

import (
	"fmt"
	"os"
	"strings"

	"liturgia/verseparser"

	"github.com/spf13/cobra"
)

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file...>",
		Short: "Report citations that cannot be fully normalized",
		Long: `Reads citation files (one citation per line; blank lines and lines
starting with # are skipped) and reports every line whose book is unknown
or whose chapter cannot be read. Exits non-zero when any line is reported.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			total := 0

			for _, path := range args {
				bad, err := lintFile(cmd, path)
				if err != nil {
					return err
				}
				if bad == 0 {
					fmt.Fprintf(out, "%s: OK\n", path)
				}
				total += bad
			}

			if total > 0 {
				return fmt.Errorf("%d citation(s) could not be normalized", total)
			}
			return nil
		},
	}
}

func lintFile(cmd *cobra.Command, path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%s: open error: %w", path, err)
	}
	defer file.Close()

	out := cmd.OutOrStdout()
	bad := 0
	err = eachLine(file, func(n int, line string) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			return
		}
		res := verseparser.Explain(line)
		if res.Fallback == verseparser.FallbackNone {
			return
		}
		fmt.Fprintf(out, "%s:%d: %s: %q → %q\n", path, n, res.Fallback, trimmed, res.Query)
		bad++
	})
	if err != nil {
		return bad, fmt.Errorf("%s: scan error: %w", path, err)
	}
	return bad, nil
}
