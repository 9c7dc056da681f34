package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stridecoach/stride/internal/cli/formatter"
)

func newAthleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "athlete",
		Short: "Manage athletes",
	}

	cmd.AddCommand(
		newAthleteRegisterCmd(app),
		newAthleteConnectCmd(app),
		newAthleteListCmd(app),
	)

	return cmd
}

func newAthleteRegisterCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new athlete",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Athletes.Register(context.Background(), email)
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s (%s)\n", a.Email, a.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Athlete email address")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAthleteConnectCmd(app *App) *cobra.Command {
	var email, chatID string

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect an athlete to a messaging chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Athletes.Connect(context.Background(), email, chatID)
			if err != nil {
				return err
			}
			fmt.Printf("Connected %s to chat %s\n", a.Email, a.ChatID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Athlete email address")
	cmd.Flags().StringVar(&chatID, "chat", "", "Chat identifier")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("chat")

	return cmd
}

func newAthleteListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered athletes",
		RunE: func(cmd *cobra.Command, args []string) error {
			athletes, err := app.Athletes.List(context.Background())
			if err != nil {
				return err
			}
			if len(athletes) == 0 {
				fmt.Println("No athletes registered.")
				return nil
			}

			headers := []string{"ID", "EMAIL", "CHAT", "REGISTERED"}
			rows := make([][]string, 0, len(athletes))
			for _, a := range athletes {
				chat := a.ChatID
				if chat == "" {
					chat = formatter.Dim("--")
				}
				rows = append(rows, []string{
					formatter.TruncID(a.ID),
					a.Email,
					chat,
					formatter.HumanDate(a.CreatedAt),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}
