package activities

import (
	"context"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTodayReturnsParsedAndRawAnalyses(t *testing.T) {
	repo := NewMemoryRepo()
	now := time.Date(2024, 6, 5, 15, 0, 0, 0, time.UTC)
	repo.PutAnalysis(Analysis{
		ID:        "a-1",
		UserID:    "user-1",
		Payload:   `{"apps":[{"name":"Slack"}]}`,
		CreatedAt: now.Add(-2 * time.Hour),
	})
	repo.PutAnalysis(Analysis{
		ID:        "a-2",
		UserID:    "user-1",
		Payload:   "free text summary",
		CreatedAt: now.Add(-1 * time.Hour),
	})
	repo.PutAnalysis(Analysis{
		ID:        "a-3",
		UserID:    "user-1",
		Payload:   "yesterday",
		CreatedAt: now.Add(-30 * time.Hour),
	})
	repo.PutAnalysis(Analysis{
		ID:        "a-4",
		UserID:    "other",
		Payload:   "not mine",
		CreatedAt: now.Add(-1 * time.Hour),
	})

	svc := NewService(repo)
	svc.now = fixedClock(now)

	summary, err := svc.Today(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.AnalysesToday != 2 {
		t.Fatalf("expected 2 analyses, got %d", summary.AnalysesToday)
	}
	if summary.LastAnalysis == nil || !summary.LastAnalysis.Equal(now.Add(-1*time.Hour)) {
		t.Errorf("unexpected last analysis: %v", summary.LastAnalysis)
	}
	// Newest first.
	if summary.Analyses[0].ID != "a-2" || summary.Analyses[1].ID != "a-1" {
		t.Errorf("unexpected order: %+v", summary.Analyses)
	}
	if summary.Analyses[0].Parsed != nil || summary.Analyses[0].Raw != "free text summary" {
		t.Errorf("expected raw fallback, got %+v", summary.Analyses[0])
	}
	if summary.Analyses[1].Parsed == nil || len(summary.Analyses[1].Parsed.Apps) != 1 {
		t.Errorf("expected parsed analysis, got %+v", summary.Analyses[1])
	}
}

func TestTodayCapsRowCount(t *testing.T) {
	repo := NewMemoryRepo()
	now := time.Date(2024, 6, 5, 15, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		repo.PutAnalysis(Analysis{
			ID:        "a",
			UserID:    "user-1",
			Payload:   "text",
			CreatedAt: now.Add(-time.Duration(i) * time.Minute),
		})
	}

	svc := NewService(repo)
	svc.now = fixedClock(now)

	summary, err := svc.Today(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.AnalysesToday != todayAnalysisLimit {
		t.Fatalf("expected %d analyses, got %d", todayAnalysisLimit, summary.AnalysesToday)
	}
}

func TestWeeklyStats(t *testing.T) {
	repo := NewMemoryRepo()
	// Wednesday; week starts the preceding Sunday.
	now := time.Date(2024, 6, 5, 15, 0, 0, 0, time.UTC)
	weekStart := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	apps := []string{"Slack", "Slack", "VS Code", "Chrome", "Slack"}
	for i, app := range apps {
		repo.PutActivity(Activity{
			ID:         "act",
			UserID:     "user-1",
			App:        app,
			CapturedAt: weekStart.Add(time.Duration(i) * time.Hour),
		})
	}
	// Before the week start; must be excluded.
	repo.PutActivity(Activity{
		ID:         "old",
		UserID:     "user-1",
		App:        "Figma",
		CapturedAt: weekStart.Add(-time.Hour),
	})

	svc := NewService(repo)
	svc.now = fixedClock(now)

	summary, err := svc.Weekly(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Stats.TotalScreenshots != 5 {
		t.Errorf("expected 5 screenshots, got %d", summary.Stats.TotalScreenshots)
	}
	if summary.Stats.UniqueApps != 3 {
		t.Errorf("expected 3 unique apps, got %d", summary.Stats.UniqueApps)
	}
	if summary.Stats.MostUsedApp != "Slack" {
		t.Errorf("expected Slack, got %q", summary.Stats.MostUsedApp)
	}
	if summary.Stats.Trend != "stable" {
		t.Errorf("expected stable trend, got %q", summary.Stats.Trend)
	}
	if len(summary.Insights) != 3 {
		t.Errorf("expected 3 insights, got %d", len(summary.Insights))
	}
}

func TestWeeklyEmpty(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	svc.now = fixedClock(time.Date(2024, 6, 5, 15, 0, 0, 0, time.UTC))

	summary, err := svc.Weekly(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Stats.TotalScreenshots != 0 || summary.Stats.UniqueApps != 0 {
		t.Errorf("expected zero stats, got %+v", summary.Stats)
	}
	if summary.Stats.MostUsedApp != "None" {
		t.Errorf("expected None, got %q", summary.Stats.MostUsedApp)
	}
}

func TestMostUsedAppTieBreaksByName(t *testing.T) {
	counts := map[string]int{"Zoom": 2, "Chrome": 2, "Slack": 1}
	if got := mostUsedApp(counts); got != "Chrome" {
		t.Fatalf("expected Chrome, got %q", got)
	}
}
