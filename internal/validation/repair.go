package validation

import (
	"fmt"
	"strings"
)

// BuildRepairPrompt turns a fatal error set into a correction request for
// the upstream generator. The template is deterministic and never includes
// content from the original submission, so malformed or oversized input is
// not echoed back.
func BuildRepairPrompt(errs []string) string {
	var b strings.Builder

	b.WriteString("The plan you generated had these issues:\n")
	for _, e := range errs {
		fmt.Fprintf(&b, "- %s\n", e)
	}

	b.WriteString(`
Please regenerate following the schema exactly. Remember:
- Return ONLY valid JSON
- No markdown, no explanation
- Every session needs: session_type, title, duration_minutes, structure, cue
- The weeks array must contain week objects with days
- Each day must have a session_type`)

	return b.String()
}
