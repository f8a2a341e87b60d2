package activities

import "time"

// Activity is one screenshot capture row from the activities table.
type Activity struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	App        string    `json:"app"`
	CapturedAt time.Time `json:"capturedAt"`
}

// Analysis is one ai_analyses row. Payload holds the AI-generated analysis
// text, usually JSON but not reliably so.
type Analysis struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Payload   string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// ActivityAnalysis is the structured shape of a parseable analysis payload.
type ActivityAnalysis struct {
	Apps              []App              `json:"apps"`
	TasksObserved     []TaskObserved     `json:"tasks_observed"`
	Artifacts         []Artifact         `json:"artifacts"`
	RepetitiveActions []RepetitiveAction `json:"repetitive_actions"`
	TimeAndFocus      *TimeAndFocus      `json:"time_and_focus,omitempty"`
	ToolsDetected     *ToolsDetected     `json:"tools_detected,omitempty"`
}

type App struct {
	Name     string `json:"name"`
	Context  string `json:"context"`
	Evidence string `json:"evidence"`
}

type TaskObserved struct {
	TaskLabel string `json:"task_label"`
	Stage     string `json:"stage"`
	Evidence  string `json:"evidence"`
}

type Artifact struct {
	Type            string `json:"type"`
	TitleOrFilename string `json:"title_or_filename"`
	Location        string `json:"location"`
	Evidence        string `json:"evidence"`
}

type RepetitiveAction struct {
	Pattern  string `json:"pattern"`
	Where    string `json:"where"`
	Evidence string `json:"evidence"`
}

type TimeAndFocus struct {
	VisibleTimestamps []string `json:"visible_timestamps"`
	MultitaskingSigns []string `json:"multitasking_signs"`
	FocusMode         string   `json:"focus_mode"`
}

type ToolsDetected struct {
	AlreadyInUse         []string `json:"already_in_use"`
	PossibleIntegrations []string `json:"possible_integrations"`
}

// WeeklyStats summarizes this week's captured activity.
type WeeklyStats struct {
	TotalScreenshots int    `json:"totalScreenshots"`
	UniqueApps       int    `json:"uniqueApps"`
	MostUsedApp      string `json:"mostUsedApp"`
	Trend            string `json:"productivityTrend"`
}

// WeeklyInsight is one insight card on the weekly summary.
type WeeklyInsight struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}
