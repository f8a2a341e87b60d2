package activities

import (
	"context"
	"time"
)

// Repo reads activity and analysis rows. Reads only; rows are written by the
// capture client and the report generator, not by this service.
type Repo interface {
	// AnalysesForDay returns up to limit ai_analyses rows for the user
	// created within [dayStart, dayEnd), newest first.
	AnalysesForDay(ctx context.Context, userID string, dayStart, dayEnd time.Time, limit int) ([]Analysis, error)
	// ActivitiesSince returns activities captured at or after since,
	// newest first.
	ActivitiesSince(ctx context.Context, userID string, since time.Time) ([]Activity, error)
}
