package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tavolahq/brigade/pkg/core/services"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <from> [to]",
		Short: "Generate assignments for the uncovered requirements in a date window",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseWindow(args)
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			result, err := services.GenerateSchedule(app.Ctx, app.Database, app.Cfg, app.Logger, from, to, dryRun)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Printf("\n✓ Dry run: nothing written\n\n")
			} else {
				fmt.Printf("\n✓ Schedule generated and saved\n\n")
			}

			fmt.Printf("Generated %d assignments for %s to %s:\n",
				len(result.Generated), from.Format(dateLayout), to.Format(dateLayout))
			for _, a := range result.Generated {
				fmt.Printf("  %s  %-12s staff=%-4d %s-%s\n",
					a.Date.Format(dateLayout), a.Station, a.StaffID, a.Start, a.End)
			}

			if len(result.Unassigned) > 0 {
				fmt.Printf("\n⚠ %d requirements could not be assigned:\n", len(result.Unassigned))
				for _, task := range result.Unassigned {
					fmt.Printf("  %s  %-12s %s-%s\n",
						task.Date.Format(dateLayout), task.Station, task.Start, task.End)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Compute the assignments without saving them")

	return cmd
}
