package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/stridecoach/stride/internal/cli/formatter"
	"github.com/stridecoach/stride/internal/domain"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage training plans",
	}

	cmd.AddCommand(
		newPlanSubmitCmd(app),
		newPlanShowCmd(app),
		newPlanVersionsCmd(app),
		newPlanMaterializeCmd(app),
	)

	return cmd
}

// resolveAthleteID maps an email to the athlete's ID.
func resolveAthleteID(ctx context.Context, app *App, email string) (string, error) {
	a, err := app.Athletes.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return a.ID, nil
}

func newPlanSubmitCmd(app *App) *cobra.Command {
	var email, file string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate a plan and store it as the athlete's next version",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			athleteID, err := resolveAthleteID(ctx, app, email)
			if err != nil {
				return err
			}
			raw, err := readPlanInput(file)
			if err != nil {
				return err
			}

			result, err := app.Plans.Submit(ctx, athleteID, raw)
			if err != nil {
				return err
			}

			fmt.Print(formatter.RenderValidation(result.Validation))
			if result.Version == nil {
				return fmt.Errorf("plan rejected")
			}
			fmt.Printf("Stored as plan v%d\n", result.Version.Version)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "athlete", "", "Athlete email address")
	cmd.Flags().StringVar(&file, "file", "", "Plan JSON file (default: stdin)")
	_ = cmd.MarkFlagRequired("athlete")

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the athlete's current plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			athleteID, err := resolveAthleteID(ctx, app, email)
			if err != nil {
				return err
			}
			pv, err := app.Plans.Latest(ctx, athleteID)
			if err != nil {
				return err
			}

			plan, err := decodeStoredPlan(pv)
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderPlanVersion(pv, plan))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "athlete", "", "Athlete email address")
	_ = cmd.MarkFlagRequired("athlete")

	return cmd
}

func newPlanVersionsCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List the athlete's plan history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			athleteID, err := resolveAthleteID(ctx, app, email)
			if err != nil {
				return err
			}
			versions, err := app.Plans.Versions(ctx, athleteID)
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				fmt.Println("No plans submitted yet.")
				return nil
			}
			fmt.Print(formatter.RenderVersionList(versions))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "athlete", "", "Athlete email address")
	_ = cmd.MarkFlagRequired("athlete")

	return cmd
}

func newPlanMaterializeCmd(app *App) *cobra.Command {
	var email, start string
	var week int

	cmd := &cobra.Command{
		Use:   "materialize",
		Short: "Create pending session records for a plan week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			athleteID, err := resolveAthleteID(ctx, app, email)
			if err != nil {
				return err
			}
			weekStart, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("parsing week start date: %w", err)
			}

			records, err := app.Plans.MaterializeWeek(ctx, athleteID, week, weekStart)
			if err != nil {
				return err
			}

			headers := []string{"ID", "DATE", "TYPE", "STATUS"}
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, []string{
					formatter.TruncID(r.ID),
					r.Date.Format("2006-01-02"),
					r.SessionType,
					formatter.StatusPill(r.Status),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			fmt.Printf("Created %d session records for week %d\n", len(records), week)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "athlete", "", "Athlete email address")
	cmd.Flags().IntVar(&week, "week", 1, "Plan week number")
	cmd.Flags().StringVar(&start, "start", "", "Week start date (YYYY-MM-DD, a Monday)")
	_ = cmd.MarkFlagRequired("athlete")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

// decodeStoredPlan rebuilds the typed plan view from a stored version.
func decodeStoredPlan(pv *domain.PlanVersion) (*domain.Plan, error) {
	doc := map[string]any{}
	if len(pv.MacroPlan) > 0 {
		doc["macro_plan"] = json.RawMessage(pv.MacroPlan)
	}
	doc["weeks"] = json.RawMessage(pv.Weeks)
	return domain.DecodePlan(doc)
}
