package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tavolahq/brigade/pkg/core/services"
)

// AuditCmd creates the audit command
func AuditCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "audit <from> [to]",
		Short: "List the coverage requirements in a date window that no shift touches",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseWindow(args)
			if err != nil {
				return err
			}

			result, err := services.AuditCoverage(app.Ctx, app.Database, app.Cfg, app.Logger, from, to)
			if err != nil {
				return err
			}

			if len(result.Gaps) == 0 {
				fmt.Printf("\n✓ All coverage requirements between %s and %s are staffed\n\n",
					from.Format(dateLayout), to.Format(dateLayout))
				return nil
			}

			fmt.Printf("\n⚠ %d uncovered requirements between %s and %s:\n\n",
				len(result.Gaps), from.Format(dateLayout), to.Format(dateLayout))
			for _, gap := range result.Gaps {
				fmt.Printf("  %s  %-12s %s-%s\n",
					gap.Date.Format(dateLayout), gap.Station, gap.Start, gap.End)
			}
			fmt.Println()

			return nil
		},
	}
}
