package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cynthia-ltlf/cynthia/internal/obslog"
	"github.com/cynthia-ltlf/cynthia/internal/partition"
	"github.com/cynthia-ltlf/cynthia/internal/surface"
	"github.com/cynthia-ltlf/cynthia/pkg/ltlf"
	"github.com/cynthia-ltlf/cynthia/pkg/synth"
)

var checkDual bool

func newSynthesizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synthesize <formula-path> <partition-path>",
		Short: "Decide LTLf realizability for a formula against an input/output partition",
		Args:  cobra.ExactArgs(2),
		RunE:  runSynthesize,
	}
	cmd.Flags().BoolVar(&checkDual, "check-dual", false, "cross-check the verdict against the dualized game and fail if they disagree")
	return cmd
}

func runSynthesize(cmd *cobra.Command, args []string) error {
	logger, err := obslog.New(cfg.Log)
	if err != nil {
		return &ExitError{Code: ExitInternal, Msg: fmt.Sprintf("failed to initialize logger: %v", err)}
	}
	defer logger.Sync()

	formulaPath, partitionPath := args[0], args[1]

	formulaText, err := os.ReadFile(formulaPath)
	if err != nil {
		return &ExitError{Code: ExitInputError, Msg: fmt.Sprintf("reading formula file: %v", err)}
	}
	partitionFile, err := os.Open(partitionPath)
	if err != nil {
		return &ExitError{Code: ExitInputError, Msg: fmt.Sprintf("reading partition file: %v", err)}
	}
	defer partitionFile.Close()

	part, err := partition.Parse(partitionFile)
	if err != nil {
		return inputError(err)
	}

	formula := strings.TrimSpace(string(formulaText))
	used, err := surface.ScanAtoms(formula)
	if err != nil {
		return inputError(err)
	}
	if err := part.CheckFormulaAtoms(used); err != nil {
		return inputError(err)
	}

	c := ltlf.NewContext(part.NumAtoms())
	parser := surface.NewParserWithAtoms(c, part.IDs())
	phi, err := parser.Parse(formula)
	if err != nil {
		return inputError(err)
	}

	x, y := part.AtomSets()

	goCtx := cmd.Context()
	if goCtx == nil {
		goCtx = context.Background()
	}
	if d := cfg.Search.Timeout(); d > 0 {
		var cancel context.CancelFunc
		goCtx, cancel = context.WithTimeout(goCtx, d)
		defer cancel()
	}

	logger.Info("synthesize starting",
		zap.String("formula_path", formulaPath),
		zap.String("partition_path", partitionPath),
		zap.Int("num_atoms", part.NumAtoms()),
		zap.Bool("check_dual", checkDual),
	)

	start := time.Now()
	var realizable bool
	if checkDual {
		ok, verdict, cerr := synth.CheckDual(goCtx, c, phi, x, y)
		if cerr != nil {
			return engineError(cerr)
		}
		if !ok {
			return &ExitError{Code: ExitInternal, Msg: "internal error: direct and dual games disagree"}
		}
		realizable = verdict
	} else {
		var serr error
		realizable, serr = synth.Synthesize(goCtx, c, phi, x, y)
		if serr != nil {
			return engineError(serr)
		}
	}
	elapsed := time.Since(start)

	logger.Info("synthesize finished", zap.Bool("realizable", realizable), zap.Duration("elapsed", elapsed))

	if realizable {
		fmt.Fprintln(cmd.OutOrStdout(), "REALIZABLE")
		return &ExitError{Code: ExitRealizable}
	}
	fmt.Fprintln(cmd.OutOrStdout(), "UNREALIZABLE")
	return &ExitError{Code: ExitUnrealizable}
}

// inputError classifies an error from the parser or partition reader: an
// *ltlf.Error of Kind InvalidArgument or ParseError maps to ExitInputError;
// anything else is treated as an internal bug.
func inputError(err error) error {
	if lerr, ok := err.(*ltlf.Error); ok {
		switch lerr.Kind {
		case ltlf.InvalidArgument, ltlf.ParseError:
			return &ExitError{Code: ExitInputError, Msg: lerr.Error()}
		}
	}
	return &ExitError{Code: ExitInternal, Msg: err.Error()}
}

// engineError classifies an error raised while running the search itself:
// Cancelled and InvalidArgument are user-visible but not bugs and map to
// ExitInputError; everything else (SDD failures, invariant violations) is
// Internal.
func engineError(err error) error {
	if lerr, ok := err.(*ltlf.Error); ok {
		switch lerr.Kind {
		case ltlf.Cancelled:
			return &ExitError{Code: ExitInputError, Msg: lerr.Error()}
		case ltlf.InvalidArgument:
			return &ExitError{Code: ExitInputError, Msg: lerr.Error()}
		}
	}
	return &ExitError{Code: ExitInternal, Msg: err.Error()}
}
