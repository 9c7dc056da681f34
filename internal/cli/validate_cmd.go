package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/stridecoach/stride/internal/cli/formatter"
	"github.com/stridecoach/stride/internal/validation"
)

// newValidateCmd runs the validation pipeline without persisting anything.
// Useful for inspecting generator output before submitting it to an athlete.
func newValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a raw plan document",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readPlanInput(file)
			if err != nil {
				return err
			}

			result := validation.Validate(raw)
			fmt.Print(formatter.RenderValidation(result))
			if !result.Valid {
				return fmt.Errorf("plan rejected")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Plan JSON file (default: stdin)")

	return cmd
}

// readPlanInput reads the raw plan text from a file, or stdin when no file
// is given.
func readPlanInput(file string) (string, error) {
	if file == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading plan from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading plan file: %w", err)
	}
	return string(data), nil
}
