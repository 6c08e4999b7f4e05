// Package jsonx extracts JSON objects from mixed LLM output.
//
// Generative models routinely wrap their JSON in markdown fences or prose.
// ExtractObject finds the first complete, balanced JSON object in such text so
// the caller can hand it straight to json.Unmarshal.
package jsonx

import "strings"

// ExtractObject returns the first balanced JSON object found in s.
//
// Behavior:
//   - markdown code fences (```json ... ```) are stripped first;
//   - braces inside JSON strings (and escaped quotes inside those strings) do
//     not count toward balancing;
//   - when the text holds several objects, the first complete one wins;
//   - when no opening brace exists, or the first object never closes, the
//     trimmed input is returned with ok=false and the caller decides whether
//     to attempt a parse anyway.
func ExtractObject(s string) (string, bool) {
	s = stripFences(s)
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return strings.TrimSpace(s), false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	// Unterminated object.
	return strings.TrimSpace(s), false
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
