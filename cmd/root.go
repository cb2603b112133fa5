package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ossim/ossim/sim"
	"github.com/ossim/ossim/sim/paging"
	"github.com/ossim/ossim/sim/trace"
	"github.com/ossim/ossim/sim/workload"
)

var (
	// Shared flags
	scenarioPath string // YAML scenario file; empty uses the built-in scenario
	logLevel     string // Log verbosity level
	traceLevel   string // Trace verbosity level

	// schedule flags
	policyName string // fifo, sjf, rr, edf or all
	quantum    int64  // Round-Robin quantum override
	overhead   int64  // per-dispatch overhead override

	// paging flags
	faultPolicy      string // replacement policy used on page faults
	loadOnFirstTouch bool   // load pages unknown to both tiers
	ramCapacity      int    // RAM capacity override
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ossim",
	Short: "CPU scheduling and paging simulator",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		if !trace.IsValidTraceLevel(traceLevel) {
			return fmt.Errorf("invalid trace level %q; valid: none, events", traceLevel)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// scheduleCmd runs one or all scheduling policies
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Compute execution timelines under FIFO, SJF, RR or EDF",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveScenario(cmd)
		if err != nil {
			return err
		}
		policies, err := parsePolicies(policyName)
		if err != nil {
			return err
		}
		st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		logrus.Infof("Starting scheduling run %s with %d processes, quantum=%d, overhead=%d",
			st.RunID, len(s.Processes), s.Quantum, s.Overhead)

		out := cmd.OutOrStdout()
		for _, p := range policies {
			res, err := workload.RunSchedule(s, p, st)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, RenderGantt(res))
			sim.ComputeMetrics(res).Print(out)
			fmt.Fprintln(out)
		}
		printTraceSummary(out, st)
		return nil
	},
}

// pagingCmd replays the scenario's page accesses
var pagingCmd = &cobra.Command{
	Use:   "paging",
	Short: "Replay page accesses against a RAM/disk hierarchy",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveScenario(cmd)
		if err != nil {
			return err
		}
		st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		logrus.Infof("Starting paging run %s: ram=%d disk=%d latency=%d fault-policy=%s",
			st.RunID, s.Memory.RAMCapacity, s.Memory.DiskCapacity, s.Memory.DiskAccessLatency, s.Memory.FaultPolicy)

		run, err := workload.RunPaging(s, st)
		if err != nil {
			return err
		}
		for _, nf := range run.NotFound {
			logrus.Warnf("%v", nf)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, RenderMemory(run.Memory.Snapshot(), run.Memory.RAMCapacity()))
		printPagingStats(out, run.Memory.Stats())
		printTraceSummary(out, st)
		return nil
	},
}

// compareCmd runs every policy and prints one comparison row per policy
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare all scheduling policies on the same processes",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveScenario(cmd)
		if err != nil {
			return err
		}
		results, err := workload.RunAllSchedules(s, nil)
		if err != nil {
			return err
		}
		metrics := make([]*sim.ScheduleMetrics, len(results))
		for i, r := range results {
			metrics[i] = sim.ComputeMetrics(r)
		}
		fmt.Fprintln(cmd.OutOrStdout(), RenderComparison(metrics))
		return nil
	},
}

// parsePolicies expands a --policy value into the policies to run.
func parsePolicies(name string) ([]sim.Policy, error) {
	if name == "all" {
		return sim.AllPolicies(), nil
	}
	if !sim.IsValidPolicy(name) {
		return nil, fmt.Errorf("%w: unknown policy %q; valid: %v or all", sim.ErrInvalidInput, name, sim.ValidPolicyNames())
	}
	return []sim.Policy{sim.Policy(name)}, nil
}

func printPagingStats(w io.Writer, stats paging.Stats) {
	fmt.Fprintln(w, "=== Paging Metrics ===")
	fmt.Fprintf(w, "Accesses             : %d\n", stats.Accesses)
	fmt.Fprintf(w, "Hits                 : %d\n", stats.Hits)
	fmt.Fprintf(w, "Disk Misses          : %d\n", stats.DiskMisses)
	fmt.Fprintf(w, "Cold Misses          : %d\n", stats.ColdMisses)
	fmt.Fprintf(w, "Not Found            : %d\n", stats.NotFound)
	fmt.Fprintf(w, "Evictions            : %d\n", stats.Evictions)
	fmt.Fprintf(w, "Hit Ratio            : %.2f%%\n", stats.HitRatio()*100)
}

func printTraceSummary(w io.Writer, st *trace.SimulationTrace) {
	if !st.Config.Enabled() {
		return
	}
	s := trace.Summarize(st)
	fmt.Fprintf(w, "=== Trace Summary (run %s) ===\n", s.RunID)
	fmt.Fprintf(w, "Segments             : %d across %d processes\n", s.TotalSegments, s.UniqueProcs)
	if s.MostDispatched != "" {
		fmt.Fprintf(w, "Most Dispatched      : %s (%d)\n", s.MostDispatched, s.Dispatches[s.MostDispatched])
	}
	fmt.Fprintf(w, "Page Events          : %d (evictions %d, latency %d ticks)\n", s.PageEvents, s.Evictions, s.TotalLatency)
	if s.PageEvents > 0 {
		fmt.Fprintf(w, "Access Hit Ratio     : %.2f%%\n", s.HitRatio*100)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&scenarioPath, "scenario", "", "Path to a YAML scenario file (default: built-in four-process scenario)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&traceLevel, "trace", "none", "Trace level (none, events)")

	scheduleCmd.Flags().StringVar(&policyName, "policy", "all", "Scheduling policy (fifo, sjf, rr, edf, all)")
	for _, c := range []*cobra.Command{scheduleCmd, compareCmd} {
		c.Flags().Int64Var(&quantum, "quantum", 4, "Round-Robin quantum in ticks (overrides the scenario when set)")
		c.Flags().Int64Var(&overhead, "overhead", 1, "Overhead charged after each dispatch (overrides the scenario when set)")
	}

	pagingCmd.Flags().StringVar(&faultPolicy, "fault-policy", "lru", "Replacement policy on page faults (lru, fifo; overrides the scenario when set)")
	pagingCmd.Flags().BoolVar(&loadOnFirstTouch, "first-touch", false, "Load pages unknown to both tiers instead of reporting them as not found")
	pagingCmd.Flags().IntVar(&ramCapacity, "ram-capacity", 10, "RAM capacity in pages (overrides the scenario when set)")

	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(pagingCmd)
	rootCmd.AddCommand(compareCmd)
}
