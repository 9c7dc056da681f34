package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(sessionType string) map[string]any {
	d := map[string]any{}
	if sessionType != "" {
		d["session_type"] = sessionType
	}
	return d
}

func weekWithDays(days map[string]any) any {
	return map[string]any{"days": days}
}

func TestCheckStructure_MissingWeeks(t *testing.T) {
	errs := checkStructure(map[string]any{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "weeks")
}

func TestCheckStructure_WeeksNotAnArray(t *testing.T) {
	errs := checkStructure(map[string]any{"weeks": "nope"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "weeks")
}

func TestCheckStructure_EmptyWeeks(t *testing.T) {
	errs := checkStructure(map[string]any{"weeks": []any{}})
	require.Len(t, errs, 1)
	assert.Equal(t, "Weeks array is empty", errs[0])
}

func TestCheckStructure_NoWeekHasDays(t *testing.T) {
	plan := map[string]any{"weeks": []any{
		weekWithDays(map[string]any{}),
		map[string]any{},
	}}
	errs := checkStructure(plan)
	require.Len(t, errs, 1)
	assert.Equal(t, "No weeks have days defined", errs[0])
}

func TestCheckStructure_MixedEmptyWeeksPass(t *testing.T) {
	plan := map[string]any{"weeks": []any{
		weekWithDays(map[string]any{}),
		weekWithDays(map[string]any{"monday": day("run")}),
	}}
	assert.Empty(t, checkStructure(plan))
}

func TestCheckStructure_MajorityMissingSessionType(t *testing.T) {
	// 10 days across two weeks, 6 without a session_type.
	week1 := map[string]any{
		"monday": day("run"), "tuesday": day(""), "wednesday": day(""),
		"thursday": day(""), "friday": day("bike"),
	}
	week2 := map[string]any{
		"monday": day(""), "tuesday": day(""), "wednesday": day(""),
		"thursday": day("swim"), "friday": day("rest"),
	}
	plan := map[string]any{"weeks": []any{weekWithDays(week1), weekWithDays(week2)}}

	errs := checkStructure(plan)
	require.Len(t, errs, 1)
	assert.Equal(t, "6 of 10 days missing session_type", errs[0])
}

func TestCheckStructure_ExactlyHalfMissingPasses(t *testing.T) {
	week := map[string]any{
		"monday": day("run"), "tuesday": day(""),
		"wednesday": day("bike"), "thursday": day(""),
	}
	plan := map[string]any{"weeks": []any{weekWithDays(week)}}
	assert.Empty(t, checkStructure(plan), "half missing is not a majority")
}

func TestCheckStructure_ValidPlanPasses(t *testing.T) {
	plan := map[string]any{"weeks": []any{
		weekWithDays(map[string]any{"monday": day("run"), "tuesday": day("rest")}),
	}}
	assert.Empty(t, checkStructure(plan))
}
