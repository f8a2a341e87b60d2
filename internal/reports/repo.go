package reports

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "report not found" }

// Repo reads stored daily recommendation rows. This service never writes
// them; rows are produced out-of-process by the report generator behind the
// webhook.
type Repo interface {
	// LatestForDate returns the most recent row for the user whose
	// created_at falls on the given calendar date (YYYY-MM-DD).
	LatestForDate(ctx context.Context, userID, date string) (DailyRecommendation, error)
}

// ExportRepo records report export snapshots.
type ExportRepo interface {
	Create(ctx context.Context, export ReportExport) error
	GetByID(ctx context.Context, userID, exportID string) (ReportExport, error)
}
