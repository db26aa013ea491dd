package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"liturgia/verseparser"

	"github.com/spf13/cobra"
)

func newNormalizeCmd() *cobra.Command {
	var (
		printURL bool
		version  string
	)

	cmd := &cobra.Command{
		Use:   "normalize [citation...]",
		Short: "Convert Portuguese citations to English lookup queries",
		Long: `Converts lectionary citations such as "Gn 22, 1-2. 9a" to lookup
queries ("Genesis 22:1-2; 22:9"). Citations are read one per line from
stdin when none are given as arguments.`,
		Example: `  liturgia normalize "Lc 24, 1-12"
  liturgia normalize --url --version NABRE "Sl 103"
  cat citations.txt | liturgia normalize`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			emit := func(ref string) {
				if printURL {
					fmt.Fprintln(out, verseparser.BuildLookupURL(ref, version))
					return
				}
				fmt.Fprintf(out, "%s → %s\n", ref, verseparser.Normalize(ref))
			}

			if len(args) > 0 {
				for _, ref := range args {
					emit(ref)
				}
				return nil
			}
			return eachLine(cmd.InOrStdin(), func(_ int, line string) {
				if strings.TrimSpace(line) != "" {
					emit(line)
				}
			})
		},
	}

	cmd.Flags().BoolVar(&printURL, "url", false, "Print the lookup URL instead of the query")
	cmd.Flags().StringVar(&version, "version", verseparser.DefaultVersion, "Bible translation used in lookup URLs")
	return cmd
}

// eachLine calls fn with every line of r and its 1-based number.
func eachLine(r io.Reader, fn func(n int, line string)) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		fn(n, sc.Text())
	}
	return sc.Err()
}
