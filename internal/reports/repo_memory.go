package reports

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo implements Repo and ExportRepo in memory for dev and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	rows    []DailyRecommendation
	exports []ReportExport
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Put stores a row. Test and dev seeding helper.
func (r *MemoryRepo) Put(row DailyRecommendation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, row)
}

func (r *MemoryRepo) LatestForDate(ctx context.Context, userID, date string) (DailyRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return DailyRecommendation{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *DailyRecommendation
	for i := range r.rows {
		row := &r.rows[i]
		if row.UserID != userID {
			continue
		}
		if !strings.HasPrefix(row.CreatedAt.UTC().Format("2006-01-02"), date) {
			continue
		}
		if latest == nil || row.CreatedAt.After(latest.CreatedAt) {
			latest = row
		}
	}
	if latest == nil {
		return DailyRecommendation{}, ErrNotFound
	}
	return *latest, nil
}

func (r *MemoryRepo) Create(ctx context.Context, export ReportExport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exports = append(r.exports, export)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, exportID string) (ReportExport, error) {
	if err := ctx.Err(); err != nil {
		return ReportExport{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, export := range r.exports {
		if export.ID == exportID && export.UserID == userID {
			return export, nil
		}
	}
	return ReportExport{}, ErrNotFound
}
