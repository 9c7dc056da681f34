package validation

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrParse indicates the submission is not well-formed JSON after fence
// stripping. It is the only way normalization fails.
var ErrParse = errors.New("invalid plan JSON")

// parseErrorMessage is the user-facing error entry for a parse failure; it
// feeds the repair prompt verbatim.
const parseErrorMessage = "Invalid JSON format - could not parse"

// numericFields is the allowlist of field names whose string values are
// coerced to numbers at any nesting depth.
var numericFields = map[string]bool{
	"duration_minutes": true,
	"minutes":          true,
	"reps":             true,
	"week_number":      true,
	"days_per_week":    true,
	"weeks_in_plan":    true,
}

const maxCueWords = 15

// normalize runs the full normalization pass over a raw submission:
// fence stripping, parse, numeric coercion, defaults, week renumbering,
// and cue truncation. Facts about reordering and truncation are returned
// for later warning generation; they are not warnings themselves.
func normalize(raw string) (map[string]any, normalizeFacts, error) {
	var facts normalizeFacts

	cleaned := stripCodeFence(raw)

	var doc any
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, facts, ErrParse
	}

	doc = coerceNumbers(doc)

	plan, ok := doc.(map[string]any)
	if !ok {
		// A bare array or scalar parses but has no plan shape; the
		// structural validator reports the missing weeks array.
		plan = map[string]any{}
	}

	fillDefaults(plan)
	facts.Reordered = sortAndRenumberWeeks(plan)
	facts.TruncatedCues = truncateLongCues(plan)

	return plan, facts, nil
}

// stripCodeFence removes a leading markdown code fence (optional
// case-insensitive "json" tag) and a trailing one. The two are stripped
// independently, so a half-fenced submission still parses.
func stripCodeFence(input string) string {
	s := strings.TrimSpace(input)

	if strings.HasPrefix(s, "```") {
		s = s[3:]
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
	}

	// Only a fence at the very end counts; a ``` mid-document is content
	// and stays.
	if idx := strings.LastIndex(s, "```"); idx >= 0 && strings.TrimSpace(s[idx+3:]) == "" {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}

// coerceNumbers walks the document and converts numeric-looking string
// values of allowlisted fields to numbers. Coercion failure is silent: a
// non-numeric string stays a string.
func coerceNumbers(v any) any {
	switch val := v.(type) {
	case []any:
		for i, item := range val {
			val[i] = coerceNumbers(item)
		}
		return val
	case map[string]any:
		for key, item := range val {
			if numericFields[key] {
				if s, ok := item.(string); ok {
					if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
						val[key] = n
						continue
					}
				}
			}
			val[key] = coerceNumbers(item)
		}
		return val
	default:
		return v
	}
}

// fillDefaults sets cue and strength defaults on every day of every week.
// Strength defaults are applied field by field so a partial block keeps
// whatever it already has.
func fillDefaults(plan map[string]any) {
	for _, week := range weeksOf(plan) {
		for _, day := range daysOf(week) {
			if _, ok := day["cue"]; !ok {
				day["cue"] = ""
			}

			strength, ok := day["strength"].(map[string]any)
			if !ok {
				strength = map[string]any{}
				day["strength"] = strength
			}
			if _, ok := strength["timing"]; !ok {
				strength["timing"] = "none"
			}
			if _, ok := strength["duration_minutes"]; !ok {
				strength["duration_minutes"] = nil
			}
			if _, ok := strength["focus"]; !ok {
				strength["focus"] = nil
			}
			if _, ok := strength["exercises"]; !ok {
				strength["exercises"] = nil
			}
		}
	}
}

// sortAndRenumberWeeks sorts weeks ascending by week_number (missing counts
// as 0 for ordering only) and overwrites every week_number with its 1-based
// position. Reports whether the original order differed.
func sortAndRenumberWeeks(plan map[string]any) bool {
	weeks, ok := plan["weeks"].([]any)
	if !ok {
		return false
	}

	original := make([]float64, len(weeks))
	for i, w := range weeks {
		original[i] = weekNumberOf(w)
	}

	// Insertion sort keeps equal week numbers in input order.
	for i := 1; i < len(weeks); i++ {
		for j := i; j > 0 && weekNumberOf(weeks[j]) < weekNumberOf(weeks[j-1]); j-- {
			weeks[j], weeks[j-1] = weeks[j-1], weeks[j]
		}
	}

	reordered := false
	for i, w := range weeks {
		if weekNumberOf(w) != original[i] {
			reordered = true
		}
		if m, ok := w.(map[string]any); ok {
			m["week_number"] = float64(i + 1)
		}
	}
	return reordered
}

// truncateLongCues caps every cue at maxCueWords words, appending an
// ellipsis marker, and returns how many cues were truncated. Applying the
// rule twice yields the same text as applying it once.
func truncateLongCues(plan map[string]any) int {
	truncated := 0
	for _, week := range weeksOf(plan) {
		for _, day := range daysOf(week) {
			cue, ok := day["cue"].(string)
			if !ok || cue == "" {
				continue
			}
			words := strings.Fields(cue)
			if len(words) > maxCueWords {
				day["cue"] = strings.Join(words[:maxCueWords], " ") + "..."
				truncated++
			}
		}
	}
	return truncated
}

// weeksOf returns the plan's week objects, tolerating any malformed shape.
func weeksOf(plan map[string]any) []map[string]any {
	raw, ok := plan["weeks"].([]any)
	if !ok {
		return nil
	}
	var weeks []map[string]any
	for _, w := range raw {
		if m, ok := w.(map[string]any); ok {
			weeks = append(weeks, m)
		}
	}
	return weeks
}

// daysOf returns a week's day objects, tolerating any malformed shape.
func daysOf(week map[string]any) map[string]map[string]any {
	raw, ok := week["days"].(map[string]any)
	if !ok {
		return nil
	}
	days := make(map[string]map[string]any, len(raw))
	for name, d := range raw {
		if m, ok := d.(map[string]any); ok {
			days[name] = m
		}
	}
	return days
}

func weekNumberOf(w any) float64 {
	m, ok := w.(map[string]any)
	if !ok {
		return 0
	}
	n, ok := m["week_number"].(float64)
	if !ok {
		return 0
	}
	return n
}
