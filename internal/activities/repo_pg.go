package activities

import (
	"context"
	"database/sql"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) AnalysesForDay(ctx context.Context, userID string, dayStart, dayEnd time.Time, limit int) ([]Analysis, error) {
	const query = `
SELECT id, user_id, ai_analysis, created_at
FROM ai_analyses
WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
ORDER BY created_at DESC
LIMIT $4`
	rows, err := r.DB.QueryContext(ctx, query, userID, dayStart, dayEnd, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Analysis, 0, limit)
	for rows.Next() {
		var a Analysis
		var payload sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &payload, &a.CreatedAt); err != nil {
			return nil, err
		}
		if payload.Valid {
			a.Payload = payload.String
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PGRepo) ActivitiesSince(ctx context.Context, userID string, since time.Time) ([]Activity, error) {
	const query = `
SELECT id, user_id, app, captured_at
FROM activities
WHERE user_id = $1 AND captured_at >= $2
ORDER BY captured_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		var app sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &app, &a.CapturedAt); err != nil {
			return nil, err
		}
		if app.Valid {
			a.App = app.String
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
