package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cynthia-ltlf/cynthia/internal/bench"
	"github.com/cynthia-ltlf/cynthia/internal/obslog"
)

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Run the built-in benchmark scenario table concurrently and report verdicts",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	logger, err := obslog.New(cfg.Log)
	if err != nil {
		return &ExitError{Code: ExitInternal, Msg: fmt.Sprintf("failed to initialize logger: %v", err)}
	}
	defer logger.Sync()

	scenarios := bench.SeedScenarios()
	logger.Info("bench starting", zap.Int("scenarios", len(scenarios)), zap.Int("workers", cfg.Bench.Workers))

	results, stats := bench.Run(cmd.Context(), scenarios, cfg.Bench.Workers)

	out := cmd.OutOrStdout()
	failed := false
	for _, r := range results {
		if r.Err != nil {
			failed = true
			fmt.Fprintf(out, "%-32s ERROR %v\n", r.Name, r.Err)
			continue
		}
		verdict := "UNREALIZABLE"
		if r.Realizable {
			verdict = "REALIZABLE"
		}
		fmt.Fprintf(out, "%-32s %-13s %v\n", r.Name, verdict, r.Duration)
	}
	fmt.Fprintln(out, stats.String())

	if failed {
		return &ExitError{Code: ExitInternal, Msg: "one or more scenarios failed to evaluate"}
	}
	return nil
}
