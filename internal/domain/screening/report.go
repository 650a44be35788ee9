package screening

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BulkReport aggregates the results of one fully processed batch. Result
// order equals input order; that ordering is an audit requirement, not
// cosmetic. A report is only ever built from a complete batch — cancelled
// or timed-out batches produce no report at all.
type BulkReport struct {
	ReportID       string        `json:"report_id"`
	Results        []*Result     `json:"results"`
	TotalProcessed int           `json:"total_processed"`
	Hits           int           `json:"hits"`
	HitRate        float64       `json:"hit_rate"`
	Errored        int           `json:"errored"`
	Duration       time.Duration `json:"-"`
	CreatedAt      time.Time     `json:"created_at"`
}

// NewBulkReport computes the aggregate statistics over the result
// sequence. hit_rate is 100 * hits / total, rounded to two decimals, and
// defined as 0 for an empty batch. Error-marked results count toward
// total_processed but never toward hits.
func NewBulkReport(results []*Result, duration time.Duration, now time.Time) *BulkReport {
	hits := 0
	errored := 0
	for _, r := range results {
		if r.IsHit {
			hits++
		}
		if r.Errored() {
			errored++
		}
	}

	return &BulkReport{
		ReportID:       uuid.NewString(),
		Results:        results,
		TotalProcessed: len(results),
		Hits:           hits,
		HitRate:        hitRate(hits, len(results)),
		Errored:        errored,
		Duration:       duration,
		CreatedAt:      now,
	}
}

func hitRate(hits, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := decimal.NewFromInt(int64(hits) * 100).
		Div(decimal.NewFromInt(int64(total))).
		Round(2)
	v, _ := rate.Float64()
	return v
}
