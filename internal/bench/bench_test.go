package bench

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRunSeedScenarioVerdicts(t *testing.T) {
	// 4 and 5 hinge on an eventuality only the environment can grant (x1
	// rising, or falling): the controller can never force a satisfying stop,
	// so both are environment wins, the same way 6 is.
	want := map[string]bool{
		"1_response":                   true,
		"2_unrealizable_no_escape":     false,
		"3_unrealizable_contradiction": false,
		"4_reachability":               false,
		"5_mirroring":                  false,
		"6_unrealizable_stall":         false,
	}

	results, stats := Run(context.Background(), SeedScenarios(), 3)
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	got := make(map[string]bool, len(results))
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("scenario %s: unexpected error: %v", r.Name, r.Err)
		}
		got[r.Name] = r.Realizable
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("verdicts mismatch (-want +got):\n%s", diff)
	}

	finalStats := stats.GetStats()
	if finalStats.TasksCompleted != int64(len(want)) {
		t.Errorf("expected %d tasks completed, got %d", len(want), finalStats.TasksCompleted)
	}
}

func TestRunReportsInputErrorsPerScenario(t *testing.T) {
	scenarios := []Scenario{
		{Name: "bad_syntax", Formula: "x1 &", Partition: ".inputs: x1\n.outputs: y1\n"},
		{Name: "unclassified_atom", Formula: "x1 & z9", Partition: ".inputs: x1\n.outputs: y1\n"},
	}
	results, _ := Run(context.Background(), scenarios, 1)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Err == nil {
			t.Errorf("scenario %s: expected an error to be reported, not silently dropped", r.Name)
		}
	}
}
