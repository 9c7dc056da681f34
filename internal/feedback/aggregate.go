// Package feedback computes session outcome statistics over a bounded window
// of records and narrates them as directives for the next planning cycle.
// Aggregation is a pure function; fetching the record window belongs to the
// calling service.
package feedback

import (
	"math"
	"strings"

	"github.com/stridecoach/stride/internal/domain"
)

// Summary aggregates outcomes over a record set.
type Summary struct {
	TotalSessions  int
	Completed      int
	Modified       int
	Skipped        int
	CompletionRate int // whole percentage of (completed+modified)/total

	SkipReasons  SkipReasonCounts
	SkipPatterns SkipPatterns
	RPEAverages  RPEAverages

	Notes []string // verbatim non-empty notes in record order
}

// SkipReasonCounts holds the four recognized skip reason buckets. Records
// carrying any other reason string are not counted anywhere.
type SkipReasonCounts struct {
	Life      int
	Tired     int
	Injured   int
	DidntWant int
}

type SkipPatterns struct {
	ByDay         map[string]int // weekday name -> skips
	BySessionType map[string]int // session type -> skips
}

type RPEAverages struct {
	Overall       *float64 // nil when no record carried a known RPE label
	BySessionType map[string]float64
}

// rpeValues maps the fixed RPE bucket labels to numeric midpoints for
// averaging. Labels outside this set are silently excluded, never zero.
var rpeValues = map[string]float64{
	"1":   1,
	"2-3": 2.5,
	"4-5": 4.5,
	"6-7": 6.5,
	"8-9": 8.5,
	"10":  10,
}

// Aggregate computes a Summary over records already filtered to the caller's
// date window. Empty input yields a fully zeroed summary, never nil.
func Aggregate(records []domain.SessionRecord) *Summary {
	summary := emptySummary()
	if len(records) == 0 {
		return summary
	}

	summary.TotalSessions = len(records)
	for _, r := range records {
		switch r.Status {
		case domain.StatusCompleted:
			summary.Completed++
		case domain.StatusModified:
			summary.Modified++
		case domain.StatusSkipped:
			summary.Skipped++
		}
	}
	summary.CompletionRate = int(math.Round(
		float64(summary.Completed+summary.Modified) / float64(summary.TotalSessions) * 100))

	aggregateSkips(records, summary)
	aggregateRPE(records, summary)

	for _, r := range records {
		if strings.TrimSpace(r.Notes) != "" {
			summary.Notes = append(summary.Notes, r.Notes)
		}
	}

	return summary
}

func aggregateSkips(records []domain.SessionRecord, summary *Summary) {
	for _, r := range records {
		if r.Status != domain.StatusSkipped {
			continue
		}

		switch r.SkipReason {
		case string(domain.SkipLife):
			summary.SkipReasons.Life++
		case string(domain.SkipTired):
			summary.SkipReasons.Tired++
		case string(domain.SkipInjured):
			summary.SkipReasons.Injured++
		case string(domain.SkipDidntWant):
			summary.SkipReasons.DidntWant++
		}

		summary.SkipPatterns.ByDay[r.Weekday()]++

		sessionType := r.SessionType
		if sessionType == "" {
			sessionType = "unknown"
		}
		summary.SkipPatterns.BySessionType[sessionType]++
	}
}

func aggregateRPE(records []domain.SessionRecord, summary *Summary) {
	var sum float64
	var count int
	byType := map[string]struct {
		sum   float64
		count int
	}{}

	for _, r := range records {
		value, ok := rpeValues[r.RPE]
		if !ok {
			continue
		}
		sum += value
		count++

		sessionType := r.SessionType
		if sessionType == "" {
			sessionType = "unknown"
		}
		agg := byType[sessionType]
		agg.sum += value
		agg.count++
		byType[sessionType] = agg
	}

	if count > 0 {
		overall := roundTenth(sum / float64(count))
		summary.RPEAverages.Overall = &overall
	}
	for sessionType, agg := range byType {
		summary.RPEAverages.BySessionType[sessionType] = roundTenth(agg.sum / float64(agg.count))
	}
}

func emptySummary() *Summary {
	return &Summary{
		SkipPatterns: SkipPatterns{
			ByDay:         map[string]int{},
			BySessionType: map[string]int{},
		},
		RPEAverages: RPEAverages{
			BySessionType: map[string]float64{},
		},
		Notes: []string{},
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
