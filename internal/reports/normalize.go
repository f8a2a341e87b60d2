package reports

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Schema variant keys tried in priority order during the extract stage.
// "suggestions" is the current shape; the rest are legacy report formats
// still present in stored rows.
var schemaKeys = []string{"suggestions", "recommendations", "daily_tips"}

// workingList is the outcome of the extract stage: the raw recommendation
// items selected from the decoded candidate, plus the envelope when a
// recognized schema key produced them.
type workingList struct {
	schema   string
	items    []any
	envelope *ReportEnvelope
}

// Normalize converts a stored report payload of unknown shape and encoding
// into an optional envelope and a display-ready recommendation list. It is a
// pure function: deterministic, side-effect free, and it never propagates a
// failure — irrecoverable input yields an empty list.
func Normalize(raw any) (env *ReportEnvelope, records []RecommendationRecord) {
	defer func() {
		if recover() != nil {
			env = nil
			records = []RecommendationRecord{}
		}
	}()

	records = []RecommendationRecord{}
	list, ok := extractWorkingList(decodePayload(raw))
	if !ok {
		return nil, records
	}

	seen := make(map[string]struct{}, len(list.items))
	for i, item := range list.items {
		rec := mapRecommendation(item, i)
		if _, dup := seen[rec.ID]; dup {
			rec.ID = rec.ID + "-" + strconv.Itoa(i)
		}
		seen[rec.ID] = struct{}{}
		records = append(records, rec)
	}
	return list.envelope, records
}

// NormalizeJSON is Normalize for payloads read straight from storage. Bytes
// that are not valid JSON are treated as an encoded string payload.
func NormalizeJSON(data []byte) (*ReportEnvelope, []RecommendationRecord) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, []RecommendationRecord{}
	}
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return Normalize(trimmed)
	}
	return Normalize(v)
}

// extractWorkingList selects the raw recommendation items from the decoded
// candidate. Recognized schema keys win in priority order; a bare array or a
// bare object are accepted without an envelope.
func extractWorkingList(candidate any) (workingList, bool) {
	switch v := candidate.(type) {
	case map[string]any:
		for _, key := range schemaKeys {
			items, ok := recommendationList(v[key])
			if !ok {
				continue
			}
			return workingList{schema: key, items: items, envelope: envelopeFrom(v)}, true
		}
		return workingList{items: []any{v}}, true
	case []any:
		return workingList{items: v}, true
	default:
		return workingList{}, false
	}
}

// recommendationList accepts a value only when it is an array of
// recommendation-shaped objects.
func recommendationList(value any) ([]any, bool) {
	items, ok := value.([]any)
	if !ok {
		return nil, false
	}
	for _, item := range items {
		if _, ok := item.(map[string]any); !ok {
			return nil, false
		}
	}
	return items, true
}

// envelopeFrom captures report metadata stored alongside a recognized
// recommendation array. Returns nil when no metadata field is present.
func envelopeFrom(obj map[string]any) *ReportEnvelope {
	env := ReportEnvelope{AppsUsed: []string{}}
	found := false
	if s, ok := firstScalar(obj, "date", "report_date", "reportDate"); ok {
		env.ReportDate = s
		found = true
	}
	if s, ok := firstScalar(obj, "user_skill", "skill_level", "userSkillLevel"); ok {
		env.SkillLevel = normalizeSkillLevel(s)
		found = true
	}
	if list, ok := firstStringList(obj, "apps_today", "apps_used", "appsUsedToday"); ok {
		env.AppsUsed = list
		found = true
	}
	if !found {
		return nil
	}
	return &env
}

// mapRecommendation applies the superset field-mapping table to one raw
// item. The alternative key lists cover every schema variant observed in
// stored reports, so no version discriminator is needed.
func mapRecommendation(item any, index int) RecommendationRecord {
	obj, _ := item.(map[string]any)

	rec := RecommendationRecord{
		ID:          "rec-" + strconv.Itoa(index),
		Description: defaultDescription,
		Impact:      ImpactMedium,
		Duration:    defaultDuration,
		Category:    defaultCategory,
		Status:      StatusNew,
		ActionSteps: []string{},
	}
	if obj == nil {
		if s := coerceString(item); s != "" {
			rec.Title = s
		}
		return rec
	}

	if id, ok := firstScalar(obj, "id"); ok {
		rec.ID = id
	}
	if title, ok := firstScalar(obj, "task", "title", "tip", "recommendation"); ok {
		rec.Title = title
	}
	if desc, ok := firstScalar(obj, "recommendation", "description", "details", "content"); ok {
		rec.Description = desc
	}
	if impact, ok := firstScalar(obj, "impact", "priority", "difficulty"); ok {
		rec.Impact = normalizeImpact(impact)
	}
	if duration, ok := firstScalar(obj, "timeToImplement", "time_required", "duration", "setup_time"); ok {
		rec.Duration = duration
	}
	if category, ok := firstScalar(obj, "category", "topic", "area", "tool"); ok {
		rec.Category = category
	}
	if status, ok := firstScalar(obj, "status", "implementation_status"); ok {
		rec.Status = normalizeStatus(status)
	}
	if steps, ok := firstStringList(obj, "how_to_apply", "actionSteps", "action_steps", "steps"); ok {
		rec.ActionSteps = steps
	}
	return rec
}

// firstScalar returns the first present, non-empty value among the given
// keys, coerced to a string.
func firstScalar(obj map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		value, ok := obj[key]
		if !ok {
			continue
		}
		if s := coerceString(value); s != "" {
			return s, true
		}
	}
	return "", false
}

// firstStringList returns the first array-valued field among the given keys
// as an ordered string slice. Non-string elements are stringified.
func firstStringList(obj map[string]any, keys ...string) ([]string, bool) {
	for _, key := range keys {
		items, ok := obj[key].([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, coerceString(item))
		}
		return out, true
	}
	return nil, false
}

// coerceString renders a JSON value as display text. Composite values fall
// back to their single-line JSON form.
func coerceString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

func normalizeImpact(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high", "critical", "hard":
		return ImpactHigh
	case "low", "easy":
		return ImpactLow
	default:
		return ImpactMedium
	}
}

func normalizeStatus(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "in progress", "in_progress", "inprogress", "started":
		return StatusInProgress
	case "completed", "complete", "done":
		return StatusCompleted
	default:
		return StatusNew
	}
}

func normalizeSkillLevel(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "beginner":
		return "beginner"
	case "intermediate":
		return "intermediate"
	default:
		return ""
	}
}
