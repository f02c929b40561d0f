package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/praktik-cli/praktik/client"
	"github.com/praktik-cli/praktik/pkg/apierr"
	"github.com/praktik-cli/praktik/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// prizesCmd groups the prize catalogue commands.
func prizesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prizes",
		Short: "Browse and claim prizes",
	}

	cmd.AddCommand(
		prizesListCmd(),
		prizesClaimCmd(),
		prizesClaimedCmd(),
	)

	return cmd
}

func prizesListCmd() *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the prize catalogue",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			s, err := newSession(ctx)
			if err != nil {
				printAPIError(cmd, err)
				return
			}

			var prizes []client.Prize
			if cached {
				prizes, err = s.ledger.CachedCatalogue(ctx)
			} else {
				prizes, err = s.ledger.RefreshCatalogue(ctx)
			}
			if err != nil {
				printAPIError(cmd, err)
				return
			}
			if len(prizes) == 0 {
				cmd.Println("No prizes found. Use 'praktik prizes list' without --cached to refresh the catalogue.")
				return
			}

			renderPrizeTable(s, prizes)
			cmd.Printf("\nYour balance: %d points\n", s.tracker.Points())
		},
	}

	cmd.Flags().BoolVarP(&cached, "cached", "c", false, "Show the locally cached catalogue without contacting the server")

	return cmd
}

func renderPrizeTable(s *session, prizes []client.Prize) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Prize", "Cost", "In Stock", "Claimed"})
	table.SetColMinWidth(1, 40)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, p := range prizes {
		claimed := ""
		if s.tracker.HasClaimed(p.ID) {
			claimed = "yes"
		}
		table.Append([]string{
			fmt.Sprintf("%d", p.ID),
			p.Name,
			fmt.Sprintf("%d", p.Points),
			fmt.Sprintf("%d", p.Quantity),
			claimed,
		})
	}

	table.Render()
}

func prizesClaimCmd() *cobra.Command {
	var prizeID int

	cmd := &cobra.Command{
		Use:   "claim",
		Short: "Exchange points for a prize",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidatePrizeID(prizeID); err != nil {
				cmd.PrintErrln("Error:", err.Error())
				return
			}

			ctx := context.Background()
			s, err := newSession(ctx)
			if err != nil {
				printAPIError(cmd, err)
				return
			}

			res, err := s.ledger.Claim(ctx, prizeID)
			if err != nil {
				printAPIError(cmd, err)
				// Stock may have moved under a concurrent claim; show the
				// fresh catalogue before the user retries.
				if apierr.IsType(err, apierr.Validation) {
					if prizes, refreshErr := s.ledger.RefreshCatalogue(ctx); refreshErr == nil {
						renderPrizeTable(s, prizes)
					}
				}
				return
			}

			cmd.Println(res.Message)
			cmd.Printf("Remaining points: %d\n", res.RemainingPoints)
		},
	}

	cmd.Flags().IntVarP(&prizeID, "id", "i", 0, "ID of the prize to claim")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Error().Err(err).Msg("Failed to mark 'id' flag as required")
	}

	return cmd
}

func prizesClaimedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claimed",
		Short: "Show the prizes you have claimed",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			s, err := newSession(ctx)
			if err != nil {
				printAPIError(cmd, err)
				return
			}

			claimed, err := s.ledger.FetchClaimed(ctx)
			if err != nil {
				printAPIError(cmd, err)
				return
			}
			if len(claimed) == 0 {
				cmd.Println("You have not claimed any prizes yet.")
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Prize", "Cost", "Claimed At"})
			table.SetColMinWidth(0, 40)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAutoWrapText(false)

			for _, c := range claimed {
				table.Append([]string{
					c.Prize.Name,
					fmt.Sprintf("%d", c.Prize.Points),
					c.ClaimedAt.Format("2006-01-02 15:04"),
				})
			}
			table.Render()
		},
	}
}
