package status

import (
	"bytes"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/constella/constella/search"
)

func TestReportTuple(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.ReportTuple(12.3, &search.Output{
		N:            big.NewInt(16057),
		PatternFound: []uint64{0, 4, 6, 10, 12, 16},
		JobID:        1,
		WorkerID:     3,
	})
	out := buf.String()
	assert.Contains(t, out, "[12.3]")
	assert.Contains(t, out, "6-tuple found by worker 3")
	assert.Contains(t, out, "16057")
	assert.Contains(t, out, "[0 4 6 10 12 16]")
}

func TestReportStats(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.ReportStats(search.Stats{
		SearchStartInstant:  time.Now().Add(-10 * time.Second),
		TupleCounts:         []uint64{100000, 10000, 1000},
		CandidatesGenerated: 120000,
		CandidatesTested:    100000,
		SievingDuration:     2.5,
		TestingDuration:     7.5,
	}, 2)
	out := buf.String()
	assert.Contains(t, out, "c/s")
	assert.Contains(t, out, "r: 10.00")
	assert.Contains(t, out, "Sieving: 120,000 candidates")
	assert.Contains(t, out, "Testing: 100,000 candidates")
}

func TestReportStatsNoTuplesYet(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.ReportStats(search.Stats{
		SearchStartInstant: time.Now().Add(-time.Second),
		TupleCounts:        []uint64{50, 0, 0},
	}, 2)
	assert.Contains(t, buf.String(), "r: -.--")
}

func TestFormatFindTime(t *testing.T) {
	assert.Equal(t, "30.00 s", formatFindTime(30))
	assert.Contains(t, formatFindTime(90), "minute")
	assert.Contains(t, formatFindTime(4*86400), "days")
}
