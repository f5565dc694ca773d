package cmd

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user-simon/kern/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "kern",
	Short: "kern - whitespace-sensitive arithmetic",
	Long: `kern parses and evaluates arithmetic where whitespace decides how
tightly operators bind. Narrow spacing binds before wide spacing; the usual
algebraic order only breaks ties between equally spaced operators.

  1 * 2+3     means  1 * (2+3)
  1*2 + 3     means  (1*2) + 3
  sqrt  1 + 1 means  sqrt(1 + 1)`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadDefault()
		}
		return err
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./kern.toml, ./kern.yaml)")
}

// inputs returns the expression sources for a command invocation: its
// arguments, or the non-blank lines of stdin when there are none. Lines keep
// their whitespace; only entirely blank lines are skipped.
func inputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var srcs []string
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		srcs = append(srcs, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return srcs, nil
}
