package llm

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// cleanJSONResponse strips the prose, code fences, and <JSON> tags that
// models wrap around their output, leaving the innermost JSON object or
// array.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.ReplaceAll(content, "<JSON>", "")
	content = strings.ReplaceAll(content, "</JSON>", "")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start, end := jsonBounds(content)
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

func jsonBounds(content string) (int, int) {
	objStart := strings.Index(content, "{")
	arrStart := strings.Index(content, "[")

	start := objStart
	if start < 0 || (arrStart >= 0 && arrStart < start) {
		start = arrStart
	}
	if start < 0 {
		return -1, -1
	}

	if content[start] == '[' {
		return start, strings.LastIndex(content, "]")
	}
	return start, strings.LastIndex(content, "}")
}

// ParseJSON parses a potentially malformed model response into v, repairing
// the JSON when a straight parse fails. The model is an untrusted formatter;
// its output never reaches callers unparsed.
func ParseJSON(content string, v interface{}) error {
	content = cleanJSONResponse(content)

	err := json.Unmarshal([]byte(content), v)
	if err == nil {
		return nil
	}
	originalErr := err

	repaired, err := jsonrepair.JSONRepair(content)
	if err != nil {
		return originalErr
	}

	if err := json.Unmarshal([]byte(repaired), v); err == nil {
		return nil
	}

	return originalErr
}
