package validation

import "fmt"

// checkConsistency evaluates the soft invariants and returns warnings. It
// only runs on structurally sound plans and never rejects: every finding is
// advisory, and the caller derives the tier from the warning count.
func checkConsistency(plan map[string]any, facts normalizeFacts) []string {
	var warnings []string

	// An explicit null macro_plan is as absent as a missing key.
	if v, ok := plan["macro_plan"]; !ok || v == nil {
		warnings = append(warnings, "Missing macro_plan - plan will work but lacks phase structure")
	}

	if facts.Reordered {
		warnings = append(warnings, "Weeks were out of order and have been renumbered")
	}

	if facts.TruncatedCues > 0 {
		warnings = append(warnings, fmt.Sprintf("%d cues were truncated to %d words", facts.TruncatedCues, maxCueWords))
	}

	sessionsWithoutStructure := 0
	restDayCount := 0
	totalSessionCount := 0

	for _, week := range weeksOf(plan) {
		for _, day := range daysOf(week) {
			totalSessionCount++
			sessionType, _ := day["session_type"].(string)
			if sessionType == "rest" {
				restDayCount++
				continue
			}
			structure, _ := day["structure"].([]any)
			if len(structure) == 0 {
				sessionsWithoutStructure++
			}
		}
	}

	if sessionsWithoutStructure > 0 {
		warnings = append(warnings, fmt.Sprintf("%d sessions missing structure array", sessionsWithoutStructure))
	}

	if totalSessionCount > 0 && restDayCount == totalSessionCount {
		warnings = append(warnings, "Plan contains only rest days - no training sessions found")
	} else if totalSessionCount > 0 && float64(restDayCount) > float64(totalSessionCount)*0.8 {
		warnings = append(warnings, fmt.Sprintf("Plan is mostly rest days (%d/%d)", restDayCount, totalSessionCount))
	}

	return warnings
}
