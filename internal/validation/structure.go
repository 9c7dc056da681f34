package validation

import "fmt"

// checkStructure evaluates the fatal structural invariants. All checks run;
// every violated one contributes an error, so a repair prompt can list the
// full set at once. Any non-empty return rejects the plan.
func checkStructure(plan map[string]any) []string {
	var errs []string

	weeks, ok := plan["weeks"].([]any)
	if !ok {
		errs = append(errs, `Missing "weeks" array`)
	}
	if ok && len(weeks) == 0 {
		errs = append(errs, "Weeks array is empty")
	}

	weeksWithoutDays := 0
	totalDays := 0
	daysWithoutSessionType := 0

	for _, w := range weeks {
		week, _ := w.(map[string]any)
		days, _ := week["days"].(map[string]any)
		if len(days) == 0 {
			weeksWithoutDays++
			continue
		}
		for _, d := range days {
			totalDays++
			day, _ := d.(map[string]any)
			if t, _ := day["session_type"].(string); t == "" {
				daysWithoutSessionType++
			}
		}
	}

	// Only total emptiness across all weeks is fatal; a mix of empty and
	// populated weeks passes.
	if weeksWithoutDays > 0 && weeksWithoutDays == len(weeks) && len(weeks) > 0 {
		errs = append(errs, "No weeks have days defined")
	}

	if totalDays > 0 && float64(daysWithoutSessionType) > float64(totalDays)/2 {
		errs = append(errs, fmt.Sprintf("%d of %d days missing session_type", daysWithoutSessionType, totalDays))
	}

	return errs
}
