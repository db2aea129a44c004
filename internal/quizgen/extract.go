package quizgen

import (
	"encoding/json"
	"strings"
)

// ExtractJSON parses raw as a JSON object. When that fails it retries once
// on the span from the first '{' to the last '}', which strips prose or
// markdown fences around the payload. Nested brace matching is not
// attempted. Returns nil, false when neither parse yields an object.
func ExtractJSON(raw string) (map[string]any, bool) {
	if obj, ok := parseObject(raw); ok {
		return obj, true
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}
	return parseObject(raw[start : end+1])
}

func parseObject(s string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
