package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tavolahq/brigade/pkg/core/engine"
	"github.com/tavolahq/brigade/pkg/core/services"
)

// ValidateCmd creates the validate command
func ValidateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <from> [to]",
		Short: "Validate the schedule in a date window against all constraint rules",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseWindow(args)
			if err != nil {
				return err
			}

			result, err := services.ValidateSchedule(app.Ctx, app.Database, app.Cfg, app.Logger, from, to)
			if err != nil {
				return err
			}

			if len(result.Results) == 0 {
				fmt.Printf("\n✓ No violations between %s and %s\n\n", from.Format(dateLayout), to.Format(dateLayout))
				return nil
			}

			fmt.Printf("\nFound %d findings between %s and %s:\n\n",
				len(result.Results), from.Format(dateLayout), to.Format(dateLayout))
			for _, res := range result.Results {
				staff := ""
				if res.StaffID != 0 {
					staff = fmt.Sprintf(" staff=%d", res.StaffID)
				}
				fmt.Printf("  [%-8s] %s %s%s: %s\n",
					res.Severity, res.Date.Format(dateLayout), res.RuleID, staff, res.Message)
			}

			counts := result.SeverityCounts()
			fmt.Printf("\nSummary: %d critical, %d errors, %d warnings, %d info\n\n",
				counts[engine.SeverityCritical],
				counts[engine.SeverityError],
				counts[engine.SeverityWarning],
				counts[engine.SeverityInfo])

			return nil
		},
	}
}
