package cmd

import (
	"context"

	"github.com/praktik-cli/praktik/client"
	"github.com/praktik-cli/praktik/pkg/validation"
	"github.com/praktik-cli/praktik/progress"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// applyCmd submits the internship application.
func applyCmd() *cobra.Command {
	var form client.ApplicationForm

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Submit your internship application",
		Long:  "Submit your internship application with an optional resume file (.pdf, .doc or .docx)",
		Run: func(cmd *cobra.Command, args []string) {
			for field, value := range map[string]string{
				"name":      form.FullName,
				"email":     form.Email,
				"phone":     form.Phone,
				"direction": form.Direction,
			} {
				if err := validation.ValidateNonEmptyString(field, value); err != nil {
					cmd.PrintErrln("Error:", err.Error())
					return
				}
			}
			if err := validation.ValidateDirection(form.Direction); err != nil {
				cmd.PrintErrln("Error:", err.Error())
				return
			}
			if form.ResumePath != "" {
				if err := validation.ValidateResumeFile(form.ResumePath); err != nil {
					cmd.PrintErrln("Error:", err.Error())
					return
				}
			}

			ctx := context.Background()
			s, err := newSession(ctx)
			if err != nil {
				printAPIError(cmd, err)
				return
			}
			if !resolveStage(cmd, s, progress.StageApplication) {
				return
			}

			var bar *progressbar.ProgressBar
			if form.ResumePath != "" {
				bar = progressbar.NewOptions(-1,
					progressbar.OptionSetDescription("Uploading application"),
					progressbar.OptionShowBytes(true),
					progressbar.OptionClearOnFinish(),
					progressbar.OptionSpinnerType(14),
				)
			}

			var res *client.ApplicationResult
			if bar != nil {
				res, err = s.tracker.SubmitApplication(ctx, form, bar)
				_ = bar.Finish()
			} else {
				res, err = s.tracker.SubmitApplication(ctx, form, nil)
			}
			if err != nil {
				printAPIError(cmd, err)
				return
			}

			cmd.Println(res.Message)
			cmd.Printf("You earned %d points (total: %d).\n", res.PointsEarned, res.TotalPoints)
		},
	}

	cmd.Flags().StringVarP(&form.FullName, "name", "n", "", "Your full name")
	cmd.Flags().StringVarP(&form.Email, "email", "e", "", "Contact email")
	cmd.Flags().StringVarP(&form.Phone, "phone", "p", "", "Contact phone number")
	cmd.Flags().StringVarP(&form.Direction, "direction", "d", "", "Direction [developer, designer]")
	cmd.Flags().StringVarP(&form.Motivation, "motivation", "m", "", "Motivation text (optional)")
	cmd.Flags().StringVarP(&form.ResumePath, "resume", "f", "", "Path to a resume file (optional)")
	for _, flag := range []string{"name", "email", "phone", "direction"} {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			log.Error().Err(err).Msgf("Failed to mark '%s' flag as required", flag)
		}
	}

	return cmd
}
