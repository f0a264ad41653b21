package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tavolahq/brigade/internal/config"
	"github.com/tavolahq/brigade/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
}

const dateLayout = "2006-01-02"

// parseWindow parses the <from> [to] positional arguments into a date
// window. A missing end date makes the window one week from the start.
func parseWindow(args []string) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, args[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("from date must be YYYY-MM-DD: %w", err)
	}

	to := from.AddDate(0, 0, 6)
	if len(args) > 1 {
		to, err = time.Parse(dateLayout, args[1])
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("to date must be YYYY-MM-DD: %w", err)
		}
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("to date %s is before from date %s", to.Format(dateLayout), from.Format(dateLayout))
	}

	return from, to, nil
}
