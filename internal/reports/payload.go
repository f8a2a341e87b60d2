package reports

import (
	"encoding/json"
	"strings"
)

// Stored payloads arrive as plain objects, JSON-encoded strings, double or
// triple encoded strings, or markdown-fenced model output. The decode loop
// peels layers until a non-string value appears. The pass cap guarantees
// termination against pathological re-encoding.
const maxDecodePasses = 10

// decodePayload resolves a raw stored value into a JSON candidate for the
// extract stage. Non-string input passes through untouched. Unparsable
// strings resolve to nil.
func decodePayload(raw any) any {
	candidate := raw
	for pass := 0; pass < maxDecodePasses; pass++ {
		text, ok := candidate.(string)
		if !ok {
			return candidate
		}
		parsed, ok := parseLoose(text)
		if !ok {
			return nil
		}
		candidate = parsed
	}
	if _, stillString := candidate.(string); stillString {
		return nil
	}
	return candidate
}

// parseLoose parses text as JSON, sanitizing wrapper artifacts and salvaging
// embedded JSON when a direct parse fails.
func parseLoose(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if v, ok := parseJSON(trimmed); ok {
		return v, true
	}
	sanitized := sanitizePayloadText(trimmed)
	if v, ok := parseJSON(sanitized); ok {
		return v, true
	}
	return salvageJSON(sanitized)
}

func parseJSON(s string) (any, bool) {
	if s == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

// sanitizePayloadText strips one layer of the wrappers seen in stored
// payloads: triple-quote markers, markdown code fences (with or without a
// language tag), surrounding quotes, and literal escape sequences.
func sanitizePayloadText(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 6 && strings.HasPrefix(s, `"""`) && strings.HasSuffix(s, `"""`) {
		s = strings.TrimSpace(s[3 : len(s)-3])
	}
	s = stripCodeFence(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\n`, "\n")
	return strings.TrimSpace(s)
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	rest := s[3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 && isFenceTag(rest[:nl]) {
		rest = rest[nl+1:]
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSuffix(rest, "```")
	return strings.TrimSpace(rest)
}

// isFenceTag reports whether the first fence line is a bare language tag
// (e.g. "json") rather than payload content.
func isFenceTag(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	for _, r := range line {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// salvageJSON slices from the first opening brace or bracket to the last
// matching closer and re-parses. It recovers payloads with stray prose or
// truncated wrappers around an intact JSON body.
func salvageJSON(s string) (any, bool) {
	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')
	start := objStart
	closer := byte('}')
	if start < 0 || (arrStart >= 0 && arrStart < start) {
		start = arrStart
		closer = ']'
	}
	if start < 0 {
		return nil, false
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return nil, false
	}
	return parseJSON(s[start : end+1])
}
