package reports

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo and ExportRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// LatestForDate returns the newest daily_recommendations row for the user on
// the given calendar date.
func (r *PGRepo) LatestForDate(ctx context.Context, userID, date string) (DailyRecommendation, error) {
	const query = `
SELECT id, user_id, recommendations, report_date, created_at
FROM daily_recommendations
WHERE user_id = $1
  AND created_at >= $2::date
  AND created_at < $2::date + INTERVAL '1 day'
ORDER BY created_at DESC
LIMIT 1`
	var row DailyRecommendation
	var payload sql.NullString
	var reportDate sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID, date).Scan(
		&row.ID,
		&row.UserID,
		&payload,
		&reportDate,
		&row.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DailyRecommendation{}, ErrNotFound
		}
		return DailyRecommendation{}, err
	}
	if payload.Valid {
		row.Payload = []byte(payload.String)
	}
	if reportDate.Valid {
		row.ReportDate = reportDate.Time.UTC().Format("2006-01-02")
	}
	return row, nil
}

// Create inserts a report export record.
func (r *PGRepo) Create(ctx context.Context, export ReportExport) error {
	const query = `
INSERT INTO report_exports (id, user_id, report_date, storage_key, size_bytes, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		export.ID,
		export.UserID,
		export.ReportDate,
		export.StorageKey,
		export.SizeBytes,
		export.CreatedAt,
	)
	return err
}

// GetByID returns a single export owned by the user.
func (r *PGRepo) GetByID(ctx context.Context, userID, exportID string) (ReportExport, error) {
	const query = `
SELECT id, user_id, report_date, storage_key, size_bytes, created_at
FROM report_exports
WHERE id = $1 AND user_id = $2
LIMIT 1`
	var export ReportExport
	var reportDate sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, exportID, userID).Scan(
		&export.ID,
		&export.UserID,
		&reportDate,
		&export.StorageKey,
		&export.SizeBytes,
		&export.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ReportExport{}, ErrNotFound
		}
		return ReportExport{}, err
	}
	if reportDate.Valid {
		export.ReportDate = reportDate.Time.UTC().Format("2006-01-02")
	}
	return export, nil
}
