package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// reasoningPrefix matches a leading <think>...</think> block some models emit before the answer.
var reasoningPrefix = regexp.MustCompile(`(?s)^\s*<think>.*?</think>\s*`)

// ExtractJSON returns the first JSON object in a model reply.
// Reasoning blocks, markdown fences and surrounding prose are ignored.
func ExtractJSON(response string) (string, error) {
	cleaned := reasoningPrefix.ReplaceAllString(response, "")

	for offset := 0; offset < len(cleaned); {
		start := strings.IndexByte(cleaned[offset:], '{')
		if start < 0 {
			break
		}
		start += offset

		end, ok := matchingBrace(cleaned, start)
		if !ok {
			break
		}
		candidate := cleaned[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
		offset = start + 1
	}

	return "", fmt.Errorf("no valid JSON found in response")
}

// matchingBrace returns the index of the brace closing the one at start.
// Braces inside string literals are skipped.
func matchingBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// ParseJSONResponse extracts JSON from a response and unmarshals it into the target.
func ParseJSONResponse[T any](response string) (T, error) {
	var result T

	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return result, fmt.Errorf("unmarshal JSON: %w", err)
	}

	return result, nil
}
