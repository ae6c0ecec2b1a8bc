package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bryanwahyu/neurolink/internal/domain/ai"
)

var (
	reFenceLine = regexp.MustCompile("^\\s*```[\\w+#.-]*\\s*$")
	reOpenFence = regexp.MustCompile("^```[A-Za-z]*")
)

var errNoObject = errors.New("no JSON object found")

// StripFences removes markdown code fence markers. Fence-only lines are dropped and
// a fence glued to the start or end of the text is cut off. Fence-only lines cannot
// occur inside a JSON string literal, so a valid JSON body is left untouched.
func StripFences(raw string) string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if reFenceLine.MatchString(line) {
			continue
		}
		kept = append(kept, line)
	}
	s := strings.TrimSpace(strings.Join(kept, "\n"))
	if loc := reOpenFence.FindStringIndex(s); loc != nil {
		s = s[loc[1]:]
	}
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

var errNoAnswer = errors.New("no object carries an answer field")

// ExtractObject returns the first balanced {...} span of s.
func ExtractObject(s string) (string, bool) {
	span, _, ok := extractFrom(s, 0)
	return span, ok
}

// extractFrom returns the first balanced {...} span at or after from, plus the
// offset just past it.
func extractFrom(s string, from int) (string, int, bool) {
	if from >= len(s) {
		return "", len(s), false
	}
	rel := strings.IndexByte(s[from:], '{')
	if rel < 0 {
		return "", len(s), false
	}
	start := from + rel
	depth := 0
	inString, escaped := false, false
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
				return s[start : i+1], i + 1, true
			}
		}
	}
	return "", len(s), false
}

// decodeObject runs strip → extract → strict decode. Spans that do not decode, or
// decode without any of keys (`{}` in raw code or prose), are skipped.
func decodeObject(raw string, keys ...string) (map[string]any, error) {
	s := StripFences(raw)
	var lastErr error
	for from := 0; ; {
		candidate, next, ok := extractFrom(s, from)
		if !ok {
			break
		}
		from = next
		var obj map[string]any
		if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
			lastErr = err
			continue
		}
		if hasAny(obj, keys...) {
			return obj, nil
		}
		lastErr = errNoAnswer
	}
	if lastErr == nil {
		lastErr = errNoObject
	}
	return nil, fmt.Errorf("%w: %v", ai.ErrMalformedResponse, lastErr)
}

func hasAny(obj map[string]any, keys ...string) bool {
	for _, k := range keys {
		if _, ok := obj[k]; ok {
			return true
		}
	}
	return false
}

// Truncate returns the prefix of s holding at most n characters.
func Truncate(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// str returns the first non-empty scalar found under keys, as a string.
func str(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := obj[k].(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				return v
			}
		case float64, bool:
			return fmt.Sprint(v)
		}
	}
	return ""
}

// num returns the first numeric value found under keys. Numeric strings count.
func num(obj map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch v := obj[k].(type) {
		case float64:
			return v, true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}
