package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// referenceProcesses is the four-process set used across scheduler tests:
// quantum 4, overhead 1.
func referenceProcesses() []Process {
	return []Process{
		NewProcess("1", 0, 8, 10, 4, 1, []int{1, 2}),
		NewProcess("2", 1, 4, 12, 4, 1, []int{3, 4}),
		NewProcess("3", 2, 9, 14, 4, 1, []int{5, 6}),
		NewProcess("4", 3, 5, 16, 4, 1, []int{7, 8}),
	}
}

func TestRun_FIFO_PreservesInputOrder(t *testing.T) {
	// GIVEN processes deliberately listed out of arrival order
	procs := []Process{
		NewProcess("c", 0, 3, 9, 4, 0, nil),
		NewProcess("a", 0, 1, 9, 4, 0, nil),
		NewProcess("b", 0, 2, 9, 4, 0, nil),
	}

	// WHEN FIFO runs
	res, err := FIFO(procs)
	require.NoError(t, err)

	// THEN dispatch order equals input order
	assert.Equal(t, []string{"c", "a", "b"}, res.Order())
}

func TestRun_FIFO_ReferenceTimeline(t *testing.T) {
	res, err := FIFO(referenceProcesses())
	require.NoError(t, err)

	want := []Segment{
		{ProcessID: "1", Start: 0, Duration: 8},
		{ProcessID: "2", Start: 9, Duration: 4},
		{ProcessID: "3", Start: 14, Duration: 9},
		{ProcessID: "4", Start: 24, Duration: 5},
	}
	assert.Equal(t, want, res.Segments)
	// 26 ticks of bursts plus one overhead tick per process
	assert.Equal(t, int64(30), res.EndTime)
	assert.Equal(t, int64(0), res.IdleTime)
}

func TestRun_FIFO_LateArrival_IdlesWithoutSegment(t *testing.T) {
	// GIVEN B arrives long after A finishes
	procs := []Process{
		NewProcess("A", 0, 2, 5, 4, 1, nil),
		NewProcess("B", 10, 3, 20, 4, 1, nil),
	}

	// WHEN FIFO runs
	res, err := FIFO(procs)
	require.NoError(t, err)

	// THEN B starts at its arrival and no idle segment is emitted
	require.Len(t, res.Segments, 2)
	assert.Equal(t, int64(10), res.Segments[1].Start)
	assert.Equal(t, int64(7), res.IdleTime)
	// end time = bursts + overheads + idle
	assert.Equal(t, int64(5+2+7), res.EndTime)
}

func TestRun_SJF_EarlierArrivalWinsOverShorterBurst(t *testing.T) {
	// GIVEN A(arrival=0, burst=8) and B(arrival=1, burst=4)
	procs := []Process{
		NewProcess("B", 1, 4, 10, 4, 0, nil),
		NewProcess("A", 0, 8, 10, 4, 0, nil),
	}

	// WHEN SJF runs
	res, err := SJF(procs)
	require.NoError(t, err)

	// THEN A runs first because the sort key is (arrival, burst)
	assert.Equal(t, []string{"A", "B"}, res.Order())
}

func TestRun_SJF_SameArrival_ShortestBurstFirst(t *testing.T) {
	procs := []Process{
		NewProcess("long", 0, 8, 50, 4, 0, nil),
		NewProcess("short", 0, 3, 50, 4, 0, nil),
		NewProcess("mid", 0, 5, 50, 4, 0, nil),
	}

	res, err := SJF(procs)
	require.NoError(t, err)

	assert.Equal(t, []string{"short", "mid", "long"}, res.Order())
	assert.Equal(t, []Segment{
		{ProcessID: "short", Start: 0, Duration: 3},
		{ProcessID: "mid", Start: 3, Duration: 5},
		{ProcessID: "long", Start: 8, Duration: 8},
	}, res.Segments)
}

func TestRun_SJF_FullTie_KeepsInputOrder(t *testing.T) {
	procs := []Process{
		NewProcess("x", 0, 2, 9, 4, 0, nil),
		NewProcess("y", 0, 2, 9, 4, 0, nil),
	}

	res, err := SJF(procs)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, res.Order())
}

func TestRun_EDF_OrdersByDeadlineThenArrival(t *testing.T) {
	// GIVEN B and C share a deadline; C arrives first
	procs := []Process{
		NewProcess("A", 0, 2, 20, 4, 0, nil),
		NewProcess("B", 2, 3, 5, 4, 0, nil),
		NewProcess("C", 1, 1, 5, 4, 0, nil),
	}

	// WHEN EDF runs
	res, err := EDF(procs)
	require.NoError(t, err)

	// THEN C, B, A; the CPU idles until C arrives at tick 1
	assert.Equal(t, []string{"C", "B", "A"}, res.Order())
	assert.Equal(t, []Segment{
		{ProcessID: "C", Start: 1, Duration: 1},
		{ProcessID: "B", Start: 2, Duration: 3},
		{ProcessID: "A", Start: 5, Duration: 2},
	}, res.Segments)
	assert.Equal(t, int64(1), res.IdleTime)
	assert.Equal(t, int64(7), res.EndTime)
}

func TestRun_RoundRobin_ReferenceTimeline(t *testing.T) {
	// WHEN Round-Robin runs with quantum 4 and overhead 1
	res, err := RoundRobin(referenceProcesses(), 4)
	require.NoError(t, err)

	// THEN slices rotate through the ready queue
	want := []Segment{
		{ProcessID: "1", Start: 0, Duration: 4},
		{ProcessID: "2", Start: 5, Duration: 4},
		{ProcessID: "3", Start: 10, Duration: 4},
		{ProcessID: "4", Start: 15, Duration: 4},
		{ProcessID: "1", Start: 20, Duration: 4},
		{ProcessID: "3", Start: 25, Duration: 4},
		{ProcessID: "4", Start: 30, Duration: 1},
		{ProcessID: "3", Start: 32, Duration: 1},
	}
	assert.Equal(t, want, res.Segments)
	assert.Equal(t, int64(34), res.EndTime)
}

func TestRun_RoundRobin_Burst9Quantum4_ThreeSlices(t *testing.T) {
	// GIVEN a single process with burst 9
	procs := []Process{NewProcess("P", 0, 9, 100, 4, 1, nil)}

	// WHEN Round-Robin runs with quantum 4
	res, err := RoundRobin(procs, 4)
	require.NoError(t, err)

	// THEN it appears in ceil(9/4)=3 segments of [4, 4, 1]
	segs := res.SegmentsFor("P")
	require.Len(t, segs, 3)
	durations := []int64{segs[0].Duration, segs[1].Duration, segs[2].Duration}
	assert.Equal(t, []int64{4, 4, 1}, durations)
	// AND the working copy's remaining time is exactly 0
	require.Len(t, res.Processes, 1)
	assert.Equal(t, int64(0), res.Processes[0].RemainingTime)
	assert.True(t, res.Processes[0].IsComplete())
}

func TestRun_RoundRobin_ZeroOption_UsesProcessQuantum(t *testing.T) {
	procs := []Process{NewProcess("P", 0, 5, 100, 2, 0, nil)}

	res, err := Run(procs, PolicyRR, RunOptions{})
	require.NoError(t, err)

	assert.Len(t, res.SegmentsFor("P"), 3)
}

func TestRun_DoesNotMutateCallerProcesses(t *testing.T) {
	// GIVEN a process set shared across policies
	procs := referenceProcesses()

	// WHEN every policy runs on the same slice
	for _, p := range AllPolicies() {
		_, err := Run(procs, p, RunOptions{Quantum: 4})
		require.NoError(t, err)
	}

	// THEN the caller's records are untouched
	for i, p := range referenceProcesses() {
		assert.Equal(t, p.RemainingTime, procs[i].RemainingTime, "process %s", p.ID)
		assert.Equal(t, p.ID, procs[i].ID, "order of caller slice must not change")
	}
}

func TestRun_AllPolicies_EveryProcessCompletes(t *testing.T) {
	for _, policy := range AllPolicies() {
		t.Run(string(policy), func(t *testing.T) {
			res, err := Run(referenceProcesses(), policy, RunOptions{Quantum: 3})
			require.NoError(t, err)

			var busy int64
			executed := make(map[string]int64)
			for i, seg := range res.Segments {
				busy += seg.Duration
				executed[seg.ProcessID] += seg.Duration
				if i > 0 {
					assert.GreaterOrEqual(t, seg.Start, res.Segments[i-1].End(), "segments must not overlap")
				}
			}
			for _, p := range res.Processes {
				assert.Equal(t, p.BurstTime, executed[p.ID], "process %s", p.ID)
				assert.True(t, p.IsComplete())
			}
			assert.Equal(t, int64(26), busy)
		})
	}
}

func TestRun_InvalidInput_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		procs  []Process
		policy Policy
		opts   RunOptions
	}{
		{"negative burst", []Process{NewProcess("a", 0, -1, 1, 4, 0, nil)}, PolicyFIFO, RunOptions{}},
		{"negative arrival", []Process{NewProcess("a", -3, 1, 1, 4, 0, nil)}, PolicySJF, RunOptions{}},
		{"duplicate id", []Process{NewProcess("a", 0, 1, 1, 4, 0, nil), NewProcess("a", 1, 1, 1, 4, 0, nil)}, PolicyEDF, RunOptions{}},
		{"negative quantum", []Process{NewProcess("a", 0, 1, 1, 4, 0, nil)}, PolicyRR, RunOptions{Quantum: -2}},
		{"zero process quantum", []Process{NewProcess("a", 0, 1, 1, 0, 0, nil)}, PolicyRR, RunOptions{}},
		{"unknown policy", []Process{NewProcess("a", 0, 1, 1, 4, 0, nil)}, Policy("lottery"), RunOptions{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Run(tc.procs, tc.policy, tc.opts)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
		})
	}
}

func TestRun_EmptyInput_EmptyTimeline(t *testing.T) {
	res, err := FIFO(nil)
	require.NoError(t, err)
	assert.Empty(t, res.Segments)
	assert.Equal(t, int64(0), res.EndTime)
}

func TestIsValidPolicy(t *testing.T) {
	for _, name := range []string{"fifo", "sjf", "rr", "edf"} {
		assert.True(t, IsValidPolicy(name), name)
	}
	for _, name := range []string{"", "FIFO", "srtf"} {
		assert.False(t, IsValidPolicy(name), name)
	}
	assert.Equal(t, []string{"fifo", "sjf", "rr", "edf"}, ValidPolicyNames())
}
