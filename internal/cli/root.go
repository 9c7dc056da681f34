package cli

import (
	"github.com/spf13/cobra"
	"github.com/stridecoach/stride/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Athletes service.AthleteService
	Plans    service.PlanService
	Checkins service.CheckinService
	Feedback service.FeedbackService
}

// NewRootCmd creates the top-level "stride" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "stride",
		Short: "Training plan validation and execution feedback",
	}

	root.AddCommand(
		newAthleteCmd(app),
		newPlanCmd(app),
		newValidateCmd(),
		newSessionCmd(app),
		newFeedbackCmd(app),
	)

	return root
}
