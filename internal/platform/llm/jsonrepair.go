package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed reports model output that could not be interpreted as the
// expected JSON document.
var ErrMalformed = errors.New("malformed model output")

// DecodeJSON parses model output into dst. It strips markdown code fences,
// attempts a strict parse, then falls back to extracting the first balanced
// JSON object embedded in surrounding prose. The raw output is never
// attached to the returned error.
func DecodeJSON(raw string, dst interface{}) error {
	cleaned := StripFences([]byte(raw))

	if err := json.Unmarshal(cleaned, dst); err == nil {
		return nil
	}

	obj, ok := ExtractJSONObject(string(cleaned))
	if !ok {
		return fmt.Errorf("%w: no JSON object found", ErrMalformed)
	}
	if err := json.Unmarshal([]byte(obj), dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// StripFences removes a wrapping markdown code fence. Models often return
// ```json\n{...}\n``` despite being told not to.
func StripFences(data []byte) []byte {
	s := bytes.TrimSpace(data)
	if !bytes.HasPrefix(s, []byte("```")) {
		return s
	}
	if idx := bytes.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	}
	if bytes.HasSuffix(s, []byte("```")) {
		s = s[:len(s)-3]
	}
	return bytes.TrimSpace(s)
}

// ExtractJSONObject returns the first balanced top-level JSON object in s.
// Braces inside string literals do not affect the balance. Returns false
// when no complete object exists.
func ExtractJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
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
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
