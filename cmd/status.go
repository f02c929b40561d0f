package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// statusCmd shows the user's current position in the task sequence.
func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show your progress and point balance",
		Run:   showStatus,
	}
}

func showStatus(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	s, err := newSession(ctx)
	if err != nil {
		printAPIError(cmd, err)
		return
	}

	state := s.tracker.State()

	cmd.Printf("Logged in as %s\n", s.user.Email)
	cmd.Printf("Current stage: %s\n\n", s.tracker.Stage())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Item", "Value"})
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	result := state.TestResult
	if result == "" {
		result = "-"
	}
	table.Append([]string{"Points", fmt.Sprintf("%d", state.Points)})
	table.Append([]string{"Test completed", yesNo(state.CompletedTest)})
	table.Append([]string{"Direction", result})
	table.Append([]string{"Game completed", yesNo(state.CompletedGame)})
	table.Append([]string{"Application submitted", yesNo(state.AppliedForInternship)})
	table.Append([]string{"Prizes claimed", fmt.Sprintf("%d", len(state.ClaimedPrizeIDs))})

	table.Render()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
