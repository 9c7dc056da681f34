package formatter

import (
	"fmt"
	"strings"

	"github.com/stridecoach/stride/internal/domain"
)

// RenderPlanVersion formats one stored plan version with its week tables.
func RenderPlanVersion(pv *domain.PlanVersion, plan *domain.Plan) string {
	var b strings.Builder

	b.WriteString(Header(fmt.Sprintf("Plan v%d", pv.Version)))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("Created %s", HumanDate(pv.CreatedAt))))
	b.WriteString("\n")

	if len(pv.MacroPlan) == 0 {
		b.WriteString(Dim("No macro plan attached."))
		b.WriteString("\n")
	}

	for i := range plan.Weeks {
		week := &plan.Weeks[i]
		b.WriteString("\n")
		title := fmt.Sprintf("Week %d", week.WeekNumber)
		if week.Focus != "" {
			title += " — " + week.Focus
		}
		b.WriteString(Bold(title))
		if total := weekTotalMinutes(week); total > 0 {
			b.WriteString(Dim(fmt.Sprintf("  %s total", FormatMinutes(total))))
		}
		b.WriteString("\n")

		rows := make([][]string, 0, len(week.Days))
		for _, p := range week.Preview() {
			rows = append(rows, []string{p.Day, p.Session, Dim(p.Cue)})
		}
		b.WriteString(RenderTable([]string{"DAY", "SESSION", "CUE"}, rows))
	}

	return b.String()
}

// weekTotalMinutes sums the scheduled training time across a week's
// non-rest sessions.
func weekTotalMinutes(week *domain.Week) int {
	total := 0
	for _, day := range week.Days {
		if day.SessionType == string(domain.SessionRest) {
			continue
		}
		total += int(day.DurationMinutes)
	}
	return total
}

// RenderVersionList formats the athlete's plan history, newest last.
func RenderVersionList(versions []*domain.PlanVersion) string {
	rows := make([][]string, 0, len(versions))
	for _, pv := range versions {
		rows = append(rows, []string{
			fmt.Sprintf("v%d", pv.Version),
			TruncID(pv.ID),
			HumanDate(pv.CreatedAt),
		})
	}
	return RenderTable([]string{"VERSION", "ID", "CREATED"}, rows)
}
