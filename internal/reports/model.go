package reports

import "time"

// Impact levels for a recommendation.
const (
	ImpactHigh   = "High"
	ImpactMedium = "Medium"
	ImpactLow    = "Low"
)

// Implementation statuses for a recommendation.
const (
	StatusNew        = "New"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Defaults applied when a source payload omits optional fields.
const (
	defaultDescription = "No description available"
	defaultDuration    = "15 minutes"
	defaultCategory    = "General"
)

// RecommendationRecord is the normalized, display-facing recommendation shape.
type RecommendationRecord struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Impact      string   `json:"impact"`
	Duration    string   `json:"duration"`
	Category    string   `json:"category"`
	Status      string   `json:"status"`
	ActionSteps []string `json:"actionSteps"`
}

// ReportEnvelope is the optional outer metadata wrapped around a
// recommendation list in some schema variants.
type ReportEnvelope struct {
	ReportDate string   `json:"reportDate"`
	SkillLevel string   `json:"userSkillLevel,omitempty"`
	AppsUsed   []string `json:"appsUsedToday"`
}

// DailyRecommendation is a stored report row from daily_recommendations.
// Payload is the raw stored value; it is only interpreted by the normalizer.
type DailyRecommendation struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Payload    []byte    `json:"-"`
	ReportDate string    `json:"reportDate"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReportExport records a snapshot of a normalized report written to the
// object store.
type ReportExport struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	ReportDate string    `json:"reportDate"`
	StorageKey string    `json:"storageKey"`
	SizeBytes  int64     `json:"sizeBytes"`
	CreatedAt  time.Time `json:"createdAt"`
}
