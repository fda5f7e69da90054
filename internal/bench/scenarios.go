package bench

// SeedScenarios returns the six built-in end-to-end benchmark scenarios,
// the whole workload of cynthia bench; the command takes no other
// scenarios.
func SeedScenarios() []Scenario {
	return []Scenario{
		{
			Name:      "1_response",
			Formula:   "G (x1 -> F y1)",
			Partition: ".inputs: x1\n.outputs: y1\n",
		},
		{
			Name:      "2_unrealizable_no_escape",
			Formula:   "G y1 & F !y1",
			Partition: ".inputs:\n.outputs: y1\n",
		},
		{
			Name:      "3_unrealizable_contradiction",
			Formula:   "X y1 & X !y1",
			Partition: ".inputs:\n.outputs: y1\n",
		},
		{
			Name:      "4_reachability",
			Formula:   "F (x1 & y1)",
			Partition: ".inputs: x1\n.outputs: y1\n",
		},
		{
			Name:      "5_mirroring",
			Formula:   "G (x1 <-> y1) & F !x1",
			Partition: ".inputs: x1\n.outputs: y1\n",
		},
		{
			Name:      "6_unrealizable_stall",
			Formula:   "y1 U x1",
			Partition: ".inputs: x1\n.outputs: y1\n",
		},
	}
}
