package activities

import (
	"encoding/json"
	"strings"
)

// ParseAnalysis decodes an ai_analyses payload into its structured form.
// Payloads predating the structured format, or free-text model output, fail
// the parse and are rendered raw by callers; this is never an error.
func ParseAnalysis(payload string) (ActivityAnalysis, bool) {
	trimmed := strings.TrimSpace(payload)
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return ActivityAnalysis{}, false
	}
	var parsed ActivityAnalysis
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return ActivityAnalysis{}, false
	}
	return parsed, true
}
