package activities

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo implements Repo in memory for dev and tests.
type MemoryRepo struct {
	mu         sync.RWMutex
	analyses   []Analysis
	activities []Activity
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// PutAnalysis stores an analysis row. Test and dev seeding helper.
func (r *MemoryRepo) PutAnalysis(a Analysis) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyses = append(r.analyses, a)
}

// PutActivity stores an activity row. Test and dev seeding helper.
func (r *MemoryRepo) PutActivity(a Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities = append(r.activities, a)
}

func (r *MemoryRepo) AnalysesForDay(ctx context.Context, userID string, dayStart, dayEnd time.Time, limit int) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Analysis
	for _, a := range r.analyses {
		if a.UserID != userID {
			continue
		}
		if a.CreatedAt.Before(dayStart) || !a.CreatedAt.Before(dayEnd) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) ActivitiesSince(ctx context.Context, userID string, since time.Time) ([]Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Activity
	for _, a := range r.activities {
		if a.UserID != userID || a.CapturedAt.Before(since) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CapturedAt.After(out[j].CapturedAt) })
	return out, nil
}
