package validation

// Tier classifies a validation outcome.
//
//	1: clean, structurally sound with zero warnings
//	2: valid with warnings, usable but imperfect
//	3: fatal, parse failure or structural error, plan rejected
const (
	TierClean    = 1
	TierWarnings = 2
	TierFatal    = 3
)

// Result is the discriminated outcome of validating a raw submission.
// Exactly one of Plan/RepairPrompt is set, governed by Valid: an accepted
// submission carries the normalized plan document, a rejected one carries
// the repair prompt for resubmission to the upstream generator.
type Result struct {
	Valid        bool
	Tier         int
	Warnings     []string
	Errors       []string
	Plan         map[string]any
	RepairPrompt string
}

// normalizeFacts carries facts the normalizer records for the consistency
// validator to turn into warnings.
type normalizeFacts struct {
	Reordered     bool
	TruncatedCues int
}
