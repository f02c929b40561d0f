package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/praktik-cli/praktik/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// testCmd groups the orientation-quiz commands.
func testCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Take or skip the orientation test",
	}

	cmd.AddCommand(
		testQuestionsCmd(),
		testCompleteCmd(),
		testSkipCmd(),
		testDirectionCmd(),
	)

	return cmd
}

func testQuestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "Show the test questions",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			s, err := newSession(ctx)
			if err != nil {
				printAPIError(cmd, err)
				return
			}

			questions, err := s.client.FetchQuestions(ctx)
			if err != nil {
				printAPIError(cmd, err)
				return
			}
			if len(questions) == 0 {
				cmd.Println("No test questions are configured yet.")
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"#", "Question", "Options"})
			table.SetColMinWidth(1, 40)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetRowLine(false)

			for i, q := range questions {
				options := ""
				for j, o := range q.Options {
					if j > 0 {
						options += " | "
					}
					options += o.Text
				}
				table.Append([]string{fmt.Sprintf("%d", i+1), q.Question, options})
			}
			table.Render()
		},
	}
}

func testCompleteCmd() *cobra.Command {
	var result string

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Complete the test with a result",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateDirection(result); err != nil {
				cmd.PrintErrln("Error:", err.Error())
				return
			}

			ctx := context.Background()
			s, err := newSession(ctx)
			if err != nil {
				printAPIError(cmd, err)
				return
			}

			res, err := s.tracker.CompleteTest(ctx, result)
			if err != nil {
				printAPIError(cmd, err)
				return
			}
			cmd.Printf("Test completed. You earned %d points (total: %d).\n", res.PointsEarned, res.TotalPoints)
		},
	}

	cmd.Flags().StringVarP(&result, "result", "d", "", "Test result [developer, designer]")
	if err := cmd.MarkFlagRequired("result"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'result' flag as required")
	}

	return cmd
}

func testSkipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skip",
		Short: "Skip the test (no points awarded)",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			s, err := newSession(ctx)
			if err != nil {
				printAPIError(cmd, err)
				return
			}

			if err := s.tracker.SkipTest(ctx); err != nil {
				printAPIError(cmd, err)
				return
			}
			cmd.Println("Test skipped. You can choose a direction with 'praktik test direction'.")
		},
	}
}

func testDirectionCmd() *cobra.Command {
	var direction string

	cmd := &cobra.Command{
		Use:   "direction",
		Short: "Choose a direction manually after skipping the test",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateDirection(direction); err != nil {
				cmd.PrintErrln("Error:", err.Error())
				return
			}

			ctx := context.Background()
			s, err := newSession(ctx)
			if err != nil {
				printAPIError(cmd, err)
				return
			}

			if err := s.tracker.SetDirection(ctx, direction); err != nil {
				printAPIError(cmd, err)
				return
			}
			cmd.Printf("Direction set to %s.\n", direction)
		},
	}

	cmd.Flags().StringVarP(&direction, "result", "d", "", "Direction [developer, designer]")
	if err := cmd.MarkFlagRequired("result"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'result' flag as required")
	}

	return cmd
}
