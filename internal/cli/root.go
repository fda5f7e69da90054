// Package cli implements the cynthia command tree: synthesize, bench, and
// version, wired through a github.com/spf13/cobra root command with
// structured go.uber.org/zap logging and an optional cynthia.toml
// configuration file.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/cynthia-ltlf/cynthia/internal/config"
)

// Process exit codes for the synthesize command.
const (
	ExitRealizable   = 0
	ExitUnrealizable = 1
	ExitInputError   = 2
	ExitInternal     = 3
)

var (
	cfgPath string
	cfg     config.Config
)

// NewRootCmd builds the cynthia root command and its subcommands. version
// is the semantic version cynthia reports via `cynthia version`.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "cynthia",
		Short: "Cynthia: LTLf reactive synthesis",
		Long: `Cynthia decides LTLf reactive synthesis: whether a finite-state
controller exists whose moves over the output propositions, in response to
the environment's moves over the input propositions, force every finite
play to satisfy a given LTLf formula.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to cynthia.toml (optional)")

	root.AddCommand(newSynthesizeCmd())
	root.AddCommand(newBenchCmd())
	root.AddCommand(newVersionCmd(version))
	return root
}
