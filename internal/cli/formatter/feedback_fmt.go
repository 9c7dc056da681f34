package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stridecoach/stride/internal/feedback"
)

// RenderFeedbackSummary formats an aggregation window for terminal display.
// The narrated coaching block is shown separately by the command.
func RenderFeedbackSummary(summary *feedback.Summary, from, to time.Time) string {
	var b strings.Builder

	b.WriteString(Header("Execution Summary"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s to %s", from.Format("Jan 2"), to.Format("Jan 2, 2006"))))
	b.WriteString("\n\n")

	if summary.TotalSessions == 0 {
		b.WriteString(Dim("No session records in this window."))
		b.WriteString("\n")
		return b.String()
	}

	rate := fmt.Sprintf("%d%%", summary.CompletionRate)
	styledRate := StyleGreen.Render(rate)
	if summary.CompletionRate < 70 {
		styledRate = StyleRed.Render(rate)
	}
	b.WriteString(fmt.Sprintf("Sessions: %s completed, %s modified, %s skipped of %s total (%s)\n",
		StyleGreen.Render(fmt.Sprintf("%d", summary.Completed)),
		StyleYellow.Render(fmt.Sprintf("%d", summary.Modified)),
		StyleDim.Render(fmt.Sprintf("%d", summary.Skipped)),
		Bold(fmt.Sprintf("%d", summary.TotalSessions)),
		styledRate,
	))

	if summary.RPEAverages.Overall != nil {
		b.WriteString(fmt.Sprintf("Average RPE: %s\n", Bold(fmt.Sprintf("%.1f", *summary.RPEAverages.Overall))))
	}

	if len(summary.RPEAverages.BySessionType) > 0 {
		types := make([]string, 0, len(summary.RPEAverages.BySessionType))
		for st := range summary.RPEAverages.BySessionType {
			types = append(types, st)
		}
		sort.Strings(types)
		rows := make([][]string, 0, len(types))
		for _, st := range types {
			rows = append(rows, []string{st, fmt.Sprintf("%.1f", summary.RPEAverages.BySessionType[st])})
		}
		b.WriteString("\n")
		b.WriteString(RenderTable([]string{"TYPE", "AVG RPE"}, rows))
	}

	if summary.Skipped > 0 {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render("Skips:"))
		b.WriteString("\n")
		for _, line := range skipBreakdown(summary) {
			b.WriteString("  " + line + "\n")
		}
	}

	if len(summary.Notes) > 0 {
		b.WriteString("\n")
		b.WriteString(Bold("Athlete notes:"))
		b.WriteString("\n")
		for _, note := range summary.Notes {
			b.WriteString(fmt.Sprintf("  %s %s\n", Dim("·"), note))
		}
	}

	return b.String()
}

func skipBreakdown(summary *feedback.Summary) []string {
	var lines []string
	add := func(label string, n int) {
		if n > 0 {
			lines = append(lines, fmt.Sprintf("%s: %d", label, n))
		}
	}
	add("life", summary.SkipReasons.Life)
	add("tired", summary.SkipReasons.Tired)
	add("injured", summary.SkipReasons.Injured)
	add("didn't want to", summary.SkipReasons.DidntWant)

	days := make([]string, 0, len(summary.SkipPatterns.ByDay))
	for day := range summary.SkipPatterns.ByDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		lines = append(lines, Dim(fmt.Sprintf("%s: %d", day, summary.SkipPatterns.ByDay[day])))
	}
	return lines
}
