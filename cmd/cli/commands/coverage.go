package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tavolahq/brigade/pkg/core/engine"
	"github.com/tavolahq/brigade/pkg/core/services"
)

// CoverageCmd creates the coverage command
func CoverageCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "coverage <from> [to]",
		Short: "Show the slot-by-slot coverage grid for a date window",
		Long: `Show the slot-by-slot coverage grid for a date window.

Each row is one station on one date. Slots run in quarter hours across the
business day. '#' marks a required slot that is staffed, '!' a required slot
with nobody on it, '.' staffing outside the required windows.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseWindow(args)
			if err != nil {
				return err
			}

			result, err := services.CoverageMatrix(app.Ctx, app.Database, app.Cfg, app.Logger, from, to)
			if err != nil {
				return err
			}

			if len(result.Rows) == 0 {
				fmt.Printf("\nNo stations with requirements or shifts between %s and %s\n\n",
					from.Format(dateLayout), to.Format(dateLayout))
				return nil
			}

			fmt.Printf("\nCoverage grid %s to %s (each column is %d minutes from %s):\n\n",
				from.Format(dateLayout), to.Format(dateLayout),
				engine.SlotMinutes, engine.FormatClock(engine.DayStartMinute))
			for _, row := range result.Rows {
				label := fmt.Sprintf("%s %-12s", row.Date.Format(dateLayout), row.Station)
				if row.Closed {
					fmt.Printf("  %s  (closed)\n", label)
					continue
				}
				fmt.Printf("  %s  %s  %d/%d min\n",
					label, renderSlots(row.Slots), row.CoveredMinutes, row.RequiredMinutes)
			}
			fmt.Println()

			return nil
		},
	}
}

func renderSlots(slots [engine.SlotsPerDay]services.SlotStatus) string {
	var b strings.Builder
	for _, s := range slots {
		switch {
		case s.Required && s.Covered:
			b.WriteByte('#')
		case s.Required:
			b.WriteByte('!')
		case s.Covered:
			b.WriteByte('.')
		default:
			b.WriteByte(' ')
		}
	}
	return strings.TrimRight(b.String(), " ")
}
