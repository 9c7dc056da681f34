package feedback

import (
	"fmt"
	"sort"
	"strings"
)

const (
	lowComplianceThreshold = 70
	highRPEThreshold       = 8.0
	maxNotesInDigest       = 3
	maxNoteLength          = 100
)

// skipReasonOrder fixes the tie-break order when ranking skip reasons.
var skipReasonOrder = []string{"life", "tired", "injured", "didnt_want_to"}

// FormatFeedbackBlock renders a summary as the execution-data text block the
// next planning prompt consumes. With no sessions in the window it returns a
// fixed build-conservatively message and nothing else.
func FormatFeedbackBlock(summary *Summary, weekStart, weekEnd int) string {
	if summary.TotalSessions == 0 {
		return fmt.Sprintf(`EXECUTION DATA (Weeks %d-%d):
No sessions completed yet. Build the plan based on the athlete's stated capacity and adjust conservatively.`, weekStart, weekEnd)
	}

	problemDay := findProblemDay(summary.SkipPatterns.ByDay)
	highRPE := findHighRPEType(summary.RPEAverages.BySessionType)

	var directives strings.Builder
	if summary.CompletionRate < lowComplianceThreshold && problemDay != "" {
		fmt.Fprintf(&directives, "\nIf compliance is low on %ss, consider moving or modifying that session.", capitalize(problemDay))
	}
	if highRPE != nil && highRPE.rpe >= highRPEThreshold {
		fmt.Fprintf(&directives, "\nIf RPE is consistently high on %s sessions (avg %.1f), reduce intensity or volume.", highRPE.sessionType, highRPE.rpe)
	}

	return fmt.Sprintf(`EXECUTION DATA (Weeks %d-%d):
- Sessions completed: %d of %d (%d%%)
- Sessions modified: %d
- Sessions skipped: %d
- Skip patterns: %s
- Average RPE on threshold work: %s
- Athlete notes: %s

Adjust the next two weeks based on this data.%s`,
		weekStart, weekEnd,
		summary.Completed, summary.TotalSessions, summary.CompletionRate,
		summary.Modified,
		summary.Skipped,
		describeSkipPatterns(summary.SkipPatterns.ByDay, summary.SkipReasons),
		thresholdRPELine(summary),
		summarizeNotes(summary.Notes),
		directives.String())
}

// findProblemDay returns the weekday with strictly more skips than every
// other day, or "" when there are no skips or the maximum is tied. A tie
// means no single day is worth calling out.
func findProblemDay(byDay map[string]int) string {
	maxDay := ""
	maxCount := 0
	tied := false

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	for _, day := range days {
		count := byDay[day]
		switch {
		case count > maxCount:
			maxDay, maxCount, tied = day, count, false
		case count == maxCount && count > 0:
			tied = true
		}
	}

	if maxCount == 0 || tied {
		return ""
	}
	return maxDay
}

type highRPEType struct {
	sessionType string
	rpe         float64
}

// findHighRPEType returns the session type with the strictly highest average
// RPE, or nil when there are none or the maximum is tied.
func findHighRPEType(byType map[string]float64) *highRPEType {
	types := make([]string, 0, len(byType))
	for sessionType := range byType {
		types = append(types, sessionType)
	}
	sort.Strings(types)

	maxType := ""
	maxRPE := 0.0
	tied := false
	for _, sessionType := range types {
		rpe := byType[sessionType]
		switch {
		case rpe > maxRPE:
			maxType, maxRPE, tied = sessionType, rpe, false
		case rpe == maxRPE && maxType != "":
			tied = true
		}
	}

	if maxType == "" || tied {
		return nil
	}
	return &highRPEType{sessionType: maxType, rpe: maxRPE}
}

// describeSkipPatterns summarizes where and why sessions were skipped,
// e.g. `Mondays: 3 skips, mostly "Life"`.
func describeSkipPatterns(byDay map[string]int, reasons SkipReasonCounts) string {
	problemDay := findProblemDay(byDay)
	if problemDay == "" {
		return "No consistent pattern"
	}

	topReason := ""
	topCount := 0
	for _, reason := range skipReasonOrder {
		count := reasonCount(reasons, reason)
		if count > topCount {
			topReason, topCount = reason, count
		}
	}

	if topReason != "" {
		display := strings.ReplaceAll(topReason, "_", " ")
		return fmt.Sprintf("%ss: %d skips, mostly %q", capitalize(problemDay), byDay[problemDay], display)
	}
	return fmt.Sprintf("%ss: %d skips", capitalize(problemDay), byDay[problemDay])
}

func reasonCount(reasons SkipReasonCounts, reason string) int {
	switch reason {
	case "life":
		return reasons.Life
	case "tired":
		return reasons.Tired
	case "injured":
		return reasons.Injured
	case "didnt_want_to":
		return reasons.DidntWant
	}
	return 0
}

// thresholdRPELine picks the most decision-relevant RPE figure: threshold
// work first, then tempo, then the overall average, then "N/A".
func thresholdRPELine(summary *Summary) string {
	if v, ok := summary.RPEAverages.BySessionType["threshold"]; ok {
		return fmt.Sprintf("%.1f", v)
	}
	if v, ok := summary.RPEAverages.BySessionType["tempo"]; ok {
		return fmt.Sprintf("%.1f", v)
	}
	if summary.RPEAverages.Overall != nil {
		return fmt.Sprintf("%.1f", *summary.RPEAverages.Overall)
	}
	return "N/A"
}

// summarizeNotes digests up to three notes, each hard-truncated to 100
// characters, with a "(+N more)" suffix when more exist.
func summarizeNotes(notes []string) string {
	if len(notes) == 0 {
		return "None provided"
	}

	shown := notes
	if len(shown) > maxNotesInDigest {
		shown = shown[:maxNotesInDigest]
	}

	quoted := make([]string, len(shown))
	for i, note := range shown {
		// Truncate on runes, not bytes, so multi-byte text survives intact.
		if runes := []rune(note); len(runes) > maxNoteLength {
			note = string(runes[:maxNoteLength]) + "..."
		}
		quoted[i] = `"` + note + `"`
	}

	digest := strings.Join(quoted, "; ")
	if len(notes) > maxNotesInDigest {
		digest = fmt.Sprintf("%s (+%d more)", digest, len(notes)-maxNotesInDigest)
	}
	return digest
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
