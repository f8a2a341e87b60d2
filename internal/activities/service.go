package activities

import (
	"context"
	"sort"
	"time"
)

const todayAnalysisLimit = 10

// AnalysisView is one analysis row prepared for display: the structured
// parse when the payload allows it, the raw text otherwise.
type AnalysisView struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"createdAt"`
	Parsed    *ActivityAnalysis `json:"parsed,omitempty"`
	Raw       string            `json:"raw,omitempty"`
}

// TodaySummary is the daily activity view.
type TodaySummary struct {
	AnalysesToday int            `json:"analysesToday"`
	LastAnalysis  *time.Time     `json:"lastAnalysisAt,omitempty"`
	Analyses      []AnalysisView `json:"analyses"`
}

// WeeklySummary is the weekly activity view.
type WeeklySummary struct {
	Stats    WeeklyStats     `json:"stats"`
	Insights []WeeklyInsight `json:"insights"`
}

// Service assembles activity summaries from stored rows.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Today returns today's AI analyses, newest first, each parsed best-effort.
func (s *Service) Today(ctx context.Context, userID string) (TodaySummary, error) {
	now := s.clock()().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	rows, err := s.Repo.AnalysesForDay(ctx, userID, dayStart, dayEnd, todayAnalysisLimit)
	if err != nil {
		return TodaySummary{}, err
	}

	summary := TodaySummary{
		AnalysesToday: len(rows),
		Analyses:      make([]AnalysisView, 0, len(rows)),
	}
	for i, row := range rows {
		if i == 0 {
			created := row.CreatedAt.UTC()
			summary.LastAnalysis = &created
		}
		view := AnalysisView{ID: row.ID, CreatedAt: row.CreatedAt.UTC()}
		if parsed, ok := ParseAnalysis(row.Payload); ok {
			view.Parsed = &parsed
		} else {
			view.Raw = row.Payload
		}
		summary.Analyses = append(summary.Analyses, view)
	}
	return summary, nil
}

// Weekly computes capture stats since the start of the current week
// (Sunday) and pairs them with the standing insight set.
func (s *Service) Weekly(ctx context.Context, userID string) (WeeklySummary, error) {
	now := s.clock()().UTC()
	startOfWeek := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -int(now.Weekday()))

	rows, err := s.Repo.ActivitiesSince(ctx, userID, startOfWeek)
	if err != nil {
		return WeeklySummary{}, err
	}

	counts := make(map[string]int)
	for _, row := range rows {
		if row.App != "" {
			counts[row.App]++
		}
	}

	stats := WeeklyStats{
		TotalScreenshots: len(rows),
		UniqueApps:       len(counts),
		MostUsedApp:      mostUsedApp(counts),
		// Trend needs historical baselines this service does not keep yet.
		Trend: "stable",
	}
	return WeeklySummary{Stats: stats, Insights: standingInsights()}, nil
}

// mostUsedApp picks the highest-count app; ties break by name for
// deterministic output.
func mostUsedApp(counts map[string]int) string {
	if len(counts) == 0 {
		return "None"
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	return names[0]
}

func standingInsights() []WeeklyInsight {
	return []WeeklyInsight{
		{
			ID:          "1",
			Title:       "Consistent Work Pattern",
			Description: "You maintained steady productivity throughout the week with consistent daily activity.",
			Type:        "achievement",
		},
		{
			ID:          "2",
			Title:       "Focus Improvement Opportunity",
			Description: "Consider reducing context switching between applications to improve deep work sessions.",
			Type:        "improvement",
		},
		{
			ID:          "3",
			Title:       "Peak Performance Hours",
			Description: "Your most productive hours appear to be between 10 AM and 2 PM.",
			Type:        "trend",
		},
	}
}

func (s *Service) clock() func() time.Time {
	if s.now != nil {
		return s.now
	}
	return time.Now
}
