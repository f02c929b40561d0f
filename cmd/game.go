package cmd

import (
	"context"

	"github.com/praktik-cli/praktik/pkg/validation"
	"github.com/praktik-cli/praktik/progress"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// gameCmd groups the mini-game commands.
func gameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Report a finished mini-game",
	}

	cmd.AddCommand(gameCompleteCmd())

	return cmd
}

func gameCompleteCmd() *cobra.Command {
	var gameType string
	var score int

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Complete a mini-game and collect the award",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateGameType(gameType); err != nil {
				cmd.PrintErrln("Error:", err.Error())
				return
			}
			if err := validation.ValidateGameScore(score); err != nil {
				cmd.PrintErrln("Error:", err.Error())
				return
			}

			ctx := context.Background()
			s, err := newSession(ctx)
			if err != nil {
				printAPIError(cmd, err)
				return
			}
			if !resolveStage(cmd, s, progress.StageGame) {
				return
			}

			res, err := s.tracker.CompleteGame(ctx, gameType, score)
			if err != nil {
				printAPIError(cmd, err)
				return
			}
			cmd.Println(res.Message)
			cmd.Printf("Total points: %d\n", res.TotalPoints)
		},
	}

	cmd.Flags().StringVarP(&gameType, "type", "t", "", "Game type [bug_catcher, color_match]")
	cmd.Flags().IntVarP(&score, "score", "s", 0, "Final game score")
	if err := cmd.MarkFlagRequired("type"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'type' flag as required")
	}

	return cmd
}
