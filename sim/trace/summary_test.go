package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_NilTrace_ReturnsZeroSummary(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.TotalSegments)
	assert.Equal(t, 0, s.PageEvents)
	assert.NotNil(t, s.CPUTime)
	assert.NotNil(t, s.OutcomeCounts)
}

func TestSummarize_Segments_AggregatesCPUTimePerProcess(t *testing.T) {
	// GIVEN a Round-Robin style trace: a runs twice, b once
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.RecordSegment(SegmentRecord{Policy: "rr", ProcessID: "a", Start: 0, Duration: 4})
	st.RecordSegment(SegmentRecord{Policy: "rr", ProcessID: "b", Start: 5, Duration: 2})
	st.RecordSegment(SegmentRecord{Policy: "rr", ProcessID: "a", Start: 8, Duration: 1})

	// WHEN summarized
	s := Summarize(st)

	// THEN CPU time and dispatch counts are per process
	assert.Equal(t, 3, s.TotalSegments)
	assert.Equal(t, 2, s.UniqueProcs)
	assert.Equal(t, int64(5), s.CPUTime["a"])
	assert.Equal(t, int64(2), s.CPUTime["b"])
	assert.Equal(t, 2, s.Dispatches["a"])
	assert.Equal(t, "a", s.MostDispatched)
	assert.Equal(t, st.RunID, s.RunID)
}

func TestSummarize_MostDispatched_TieBrokenByID(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.RecordSegment(SegmentRecord{ProcessID: "z", Duration: 1})
	st.RecordSegment(SegmentRecord{ProcessID: "m", Duration: 1})

	assert.Equal(t, "m", Summarize(st).MostDispatched)
}

func TestSummarize_Pages_CountsOutcomesAndHitRatio(t *testing.T) {
	// GIVEN two inserts followed by a hit, a disk miss with eviction and a not-found
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})
	st.RecordPage(PageRecord{ProcessID: "1", Page: 1, Outcome: "insert"})
	st.RecordPage(PageRecord{ProcessID: "1", Page: 2, Outcome: "insert", Evicted: "P1-Pag9"})
	st.RecordPage(PageRecord{ProcessID: "1", Page: 1, Outcome: "hit"})
	st.RecordPage(PageRecord{ProcessID: "1", Page: 9, Outcome: "disk-miss", Evicted: "P1-Pag2", Latency: 2})
	st.RecordPage(PageRecord{ProcessID: "2", Page: 7, Outcome: "not-found"})

	// WHEN summarized
	s := Summarize(st)

	// THEN inserts are excluded from the hit ratio denominator
	assert.Equal(t, 5, s.PageEvents)
	assert.Equal(t, 2, s.OutcomeCounts["insert"])
	assert.Equal(t, 1, s.OutcomeCounts["hit"])
	assert.Equal(t, 2, s.Evictions)
	assert.Equal(t, int64(2), s.TotalLatency)
	assert.InDelta(t, 1.0/3.0, s.HitRatio, 1e-9)
}
