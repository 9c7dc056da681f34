package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stridecoach/stride/internal/cli/formatter"
)

func newFeedbackCmd(app *App) *cobra.Command {
	var email string
	var weeks int
	var showBlock bool

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Summarize recent execution data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			athleteID, err := resolveAthleteID(ctx, app, email)
			if err != nil {
				return err
			}

			report, err := app.Feedback.Recent(ctx, athleteID, weeks)
			if err != nil {
				return err
			}

			fmt.Print(formatter.RenderFeedbackSummary(report.Summary, report.From, report.To))
			if showBlock {
				fmt.Println()
				fmt.Print(formatter.RenderBox("Generator Block", report.Block))
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "athlete", "", "Athlete email address")
	cmd.Flags().IntVar(&weeks, "weeks", 2, "Trailing window in weeks")
	cmd.Flags().BoolVar(&showBlock, "block", false, "Show the raw block handed to plan generation")
	_ = cmd.MarkFlagRequired("athlete")

	return cmd
}
