// Package validation implements the tiered validation and repair pipeline
// for raw plan submissions: normalization, fatal structural checks, advisory
// consistency checks, and repair prompt generation for rejected input.
//
// The pipeline never returns an error for malformed input; every outcome in
// the taxonomy is represented in the Result. Plans flow through as permissive
// map trees so fields outside the schema are preserved untouched.
package validation

// Validate runs the full pipeline over a raw submission.
//
// Normalization failure or any structural error short-circuits to a tier 3
// rejection carrying a repair prompt; otherwise the consistency pass tags
// the plan tier 1 (clean) or tier 2 (valid with warnings).
func Validate(raw string) *Result {
	plan, facts, err := normalize(raw)
	if err != nil {
		return rejected([]string{parseErrorMessage})
	}

	if errs := checkStructure(plan); len(errs) > 0 {
		return rejected(errs)
	}

	warnings := checkConsistency(plan, facts)
	tier := TierClean
	if len(warnings) > 0 {
		tier = TierWarnings
	}

	return &Result{
		Valid:    true,
		Tier:     tier,
		Warnings: warnings,
		Errors:   []string{},
		Plan:     plan,
	}
}

func rejected(errs []string) *Result {
	return &Result{
		Valid:        false,
		Tier:         TierFatal,
		Warnings:     []string{},
		Errors:       errs,
		RepairPrompt: BuildRepairPrompt(errs),
	}
}
