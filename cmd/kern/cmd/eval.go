package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user-simon/kern"
)

var (
	evalPrec   int
	evalFormat string
	evalEcho   bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [expr ...]",
	Short: "Evaluate expressions",
	Long: `Eval parses each argument as one expression, evaluates it, and prints
the result.

With no arguments, expressions are read from stdin, one per line. Inputs are
parsed up front; an expression whose evaluation fails prints the error and
does not stop the remaining ones.

Examples:
  kern eval '1 * 2+3'
  kern eval -p 128 'sqrt 2'
  kern eval --echo '1*    3+4   -   5/6'`,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().IntVarP(&evalPrec, "prec", "p", 64, "precision of calculations in bits")
	evalCmd.Flags().StringVarP(&evalFormat, "format", "f", "%g", "result formatting verb")
	evalCmd.Flags().BoolVarP(&evalEcho, "echo", "e", false, "print parse trees alongside results")
}

func runEval(cmd *cobra.Command, args []string) error {
	// Flags beat the config file, but only when given.
	prec := evalPrec
	if !cmd.Flags().Changed("prec") {
		prec = cfg.Prec
	}
	format := evalFormat
	if !cmd.Flags().Changed("format") {
		format = cfg.Format
	}
	echo := evalEcho
	if !cmd.Flags().Changed("echo") {
		echo = cfg.Echo
	}
	if prec < 0 {
		return fmt.Errorf("precision (%d) must be positive", prec)
	}

	srcs, err := inputs(args)
	if err != nil {
		return err
	}
	exprs := make([]*kern.Expr, len(srcs))
	for i, src := range srcs {
		a, err := kern.Parse(src)
		if err != nil {
			return err
		}
		exprs[i] = a
	}

	ctx := kern.NewContext(kern.Prec(uint(prec)))
	verb := format + "\n"
	for _, a := range exprs {
		if echo {
			fmt.Printf("%v : ", a)
		}
		r := ctx.Eval(a)
		if r == nil {
			fmt.Println(ctx.Err())
			continue
		}
		fmt.Printf(verb, r)
	}
	return nil
}
