package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stridecoach/stride/internal/cli/formatter"
	"github.com/stridecoach/stride/internal/domain"
	"github.com/stridecoach/stride/internal/service"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Record session outcomes",
	}

	cmd.AddCommand(
		newSessionCheckinCmd(app),
	)

	return cmd
}

func newSessionCheckinCmd(app *App) *cobra.Command {
	var sessionID, status, skipReason, rpe, cueFeedback, notes string

	cmd := &cobra.Command{
		Use:     "checkin",
		Aliases: []string{"log"},
		Short:   "Check in on a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := app.Checkins.Checkin(context.Background(), service.CheckinInput{
				SessionID:   sessionID,
				Status:      domain.SessionStatus(status),
				SkipReason:  skipReason,
				RPE:         rpe,
				CueFeedback: cueFeedback,
				Notes:       notes,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%s %s on %s\n",
				formatter.StatusPill(record.Status),
				record.SessionType,
				record.Date.Format("2006-01-02"),
			)
			if record.RPE != "" {
				fmt.Printf("RPE: %s\n", record.RPE)
			}
			if record.SkipReason != "" {
				fmt.Printf("Skip reason: %s\n", record.SkipReason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session record ID")
	cmd.Flags().StringVar(&status, "status", "completed", "Outcome: completed, modified, or skipped")
	cmd.Flags().StringVar(&skipReason, "skip-reason", "", "Why the session was skipped")
	cmd.Flags().StringVar(&rpe, "rpe", "", "Perceived effort bucket (1, 2-3, 4-5, 6-7, 8-9, 10)")
	cmd.Flags().StringVar(&cueFeedback, "cue", "", "Feedback on the session cue")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}
