package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user-simon/kern"
)

var parseCmd = &cobra.Command{
	Use:   "parse [expr ...]",
	Short: "Parse expressions and print their trees",
	Long: `Parse parses each argument as one expression and prints the fully
bracketed form, making the grouping chosen by the whitespace visible.

With no arguments, expressions are read from stdin, one per line.

Examples:
  kern parse '1 * 2+3'
  kern parse 'sqrt sqrt  1 + 1'
  echo '1*2 + 3' | kern parse`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	srcs, err := inputs(args)
	if err != nil {
		return err
	}
	for _, src := range srcs {
		a, err := kern.Parse(src)
		if err != nil {
			return err
		}
		fmt.Println(a)
	}
	return nil
}
