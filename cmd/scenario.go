package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ossim/ossim/sim/workload"
)

// resolveScenario loads the --scenario file (or the built-in scenario),
// applies flags the user set explicitly, and validates the result.
// Flags left at their defaults never overwrite scenario values.
func resolveScenario(cmd *cobra.Command) (*workload.Scenario, error) {
	var s *workload.Scenario
	if scenarioPath == "" {
		s = workload.DefaultScenario()
	} else {
		loaded, err := workload.LoadScenario(scenarioPath)
		if err != nil {
			return nil, err
		}
		s = loaded
	}
	applyOverrides(cmd, s)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func applyOverrides(cmd *cobra.Command, s *workload.Scenario) {
	flags := cmd.Flags()
	if flags.Changed("quantum") {
		s.Quantum = quantum
	}
	if flags.Changed("overhead") {
		s.Overhead = overhead
	}
	if flags.Changed("fault-policy") {
		s.Memory.FaultPolicy = faultPolicy
	}
	if flags.Changed("first-touch") {
		s.Memory.LoadOnFirstTouch = loadOnFirstTouch
	}
	if flags.Changed("ram-capacity") {
		s.Memory.RAMCapacity = ramCapacity
	}
}
