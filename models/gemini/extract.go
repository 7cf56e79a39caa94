package gemini

import (
	"encoding/json"
	"fmt"

	"carebridge-backend/models"
)

// ExtractJSONObject finds the first complete top-level JSON object embedded in
// free text and returns it verbatim. Braces inside string literals do not
// affect nesting depth, and escaped quotes do not end a literal. A candidate
// that balances but fails to parse is skipped in favor of the next opening
// brace. Returns models.ErrResponseParse when no valid object exists.
func ExtractJSONObject(text string) ([]byte, error) {
	for start := 0; start < len(text); start++ {
		if text[start] != '{' {
			continue
		}

		end, ok := scanObject(text, start)
		if !ok {
			// Unbalanced from this brace, but a later one may still
			// close: string parity can differ between start points.
			continue
		}

		candidate := []byte(text[start : end+1])
		if json.Valid(candidate) {
			return candidate, nil
		}
		start = end
	}
	return nil, fmt.Errorf("%w: no JSON object found in response text", models.ErrResponseParse)
}

// scanObject walks from the opening brace at start and returns the index of
// the matching closing brace.
func scanObject(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

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
				return i, true
			}
		}
	}
	return 0, false
}
