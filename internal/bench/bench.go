// Package bench runs a set of independent LTLf synthesis scenarios
// concurrently, one goroutine per scenario via a fixed-size worker pool,
// and reports realizability plus wall-clock time for each. Concurrency is
// confined entirely to this package: every scenario constructs its own
// pkg/ltlf.Context, pkg/sdd.Manager, and pkg/game.Engine, so the
// single-threaded engine state is never shared across goroutines.
package bench

import (
	"context"
	"strings"
	"time"

	"github.com/cynthia-ltlf/cynthia/internal/parallel"
	"github.com/cynthia-ltlf/cynthia/internal/partition"
	"github.com/cynthia-ltlf/cynthia/internal/surface"
	"github.com/cynthia-ltlf/cynthia/pkg/ltlf"
	"github.com/cynthia-ltlf/cynthia/pkg/synth"
)

// Scenario is one self-contained realizability question: an LTLf formula
// plus its input/output partition, in the surface and partition-file
// grammars internal/surface and internal/partition already parse.
type Scenario struct {
	Name      string
	Formula   string
	Partition string // the .inputs:/.outputs: partition file, verbatim
}

// Result is the outcome of running one Scenario.
type Result struct {
	Name       string
	Realizable bool
	Duration   time.Duration
	Err        error
}

// Run evaluates every scenario concurrently over a StaticWorkerPool sized
// by workers (0 or negative defaults to runtime.NumCPU(), the pool's own
// convention), and returns one Result per scenario in input order together
// with aggregate ExecutionStats. goCtx cancellation aborts in-flight and
// not-yet-started scenarios; already-finished results are still returned.
func Run(goCtx context.Context, scenarios []Scenario, workers int) ([]Result, *parallel.ExecutionStats) {
	pool := parallel.NewStaticWorkerPool(workers)
	defer pool.Shutdown()
	stats := parallel.NewExecutionStats()

	results := make([]Result, len(scenarios))
	done := make(chan struct{}, len(scenarios))

	for i, sc := range scenarios {
		i, sc := i, sc
		stats.RecordTaskSubmitted()
		err := pool.Submit(goCtx, func() {
			defer func() { done <- struct{}{} }()
			start := time.Now()
			realizable, runErr := runOne(goCtx, sc)
			elapsed := time.Since(start)
			results[i] = Result{Name: sc.Name, Realizable: realizable, Duration: elapsed, Err: runErr}
			if runErr != nil {
				stats.RecordTaskFailed(runErr)
			} else {
				stats.RecordTaskCompleted(elapsed)
			}
		})
		if err != nil {
			results[i] = Result{Name: sc.Name, Err: err}
			stats.RecordTaskFailed(err)
			done <- struct{}{}
		}
	}

	for range scenarios {
		<-done
	}
	stats.Finalize()
	return results, stats
}

func runOne(goCtx context.Context, sc Scenario) (bool, error) {
	part, err := partition.Parse(strings.NewReader(sc.Partition))
	if err != nil {
		return false, err
	}
	used, err := surface.ScanAtoms(sc.Formula)
	if err != nil {
		return false, err
	}
	if err := part.CheckFormulaAtoms(used); err != nil {
		return false, err
	}

	c := ltlf.NewContext(part.NumAtoms())
	p := surface.NewParserWithAtoms(c, part.IDs())
	phi, err := p.Parse(sc.Formula)
	if err != nil {
		return false, err
	}

	x, y := part.AtomSets()
	return synth.Synthesize(goCtx, c, phi, x, y)
}
