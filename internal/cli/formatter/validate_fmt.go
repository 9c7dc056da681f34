package formatter

import (
	"fmt"
	"strings"

	"github.com/stridecoach/stride/internal/validation"
)

// RenderValidation formats a validation outcome for terminal display.
func RenderValidation(result *validation.Result) string {
	var b strings.Builder

	b.WriteString(Header("Plan Validation"))
	b.WriteString("\n\n")
	b.WriteString(TierIndicator(result.Tier))
	b.WriteString("\n")

	if len(result.Errors) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleRed.Render("Errors:"))
		b.WriteString("\n")
		for _, e := range result.Errors {
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleRed.Render("✖"), e))
		}
	}

	if len(result.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render("Warnings:"))
		b.WriteString("\n")
		for _, w := range result.Warnings {
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render("▲"), w))
		}
	}

	if result.RepairPrompt != "" {
		b.WriteString("\n")
		b.WriteString(RenderBox("Repair Prompt", result.RepairPrompt))
		b.WriteString("\n")
	}

	return b.String()
}
