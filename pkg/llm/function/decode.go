package function

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// DecodeError reports a model answer that could not be converted into the
// declared output type
type DecodeError struct {
	Response string
	Err      error
}

func (e *DecodeError) Error() string {
	return "failed to decode model response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// decode tries every JSON value embedded in text, in order, and returns the
// first one that unmarshals into T
func decode[T any](text string) (T, error) {
	var out T

	candidates := jsonValues(text)
	if len(candidates) == 0 {
		return out, &DecodeError{Response: text, Err: errors.New("response contains no JSON value")}
	}

	var lastErr error
	for _, candidate := range candidates {
		var v T
		if err := json.Unmarshal([]byte(candidate), &v); err != nil {
			lastErr = err
			continue
		}
		return v, nil
	}
	return out, &DecodeError{Response: text, Err: lastErr}
}

// extractJSON returns the first JSON object or array in text, ignoring
// Markdown fences and surrounding prose
func extractJSON(text string) string {
	values := jsonValues(text)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// jsonValues returns every complete JSON object or array that starts at a
// '[' or '{' in text. Values nested inside an earlier match are skipped.
func jsonValues(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if json.Valid([]byte(text)) && (text[0] == '[' || text[0] == '{') {
		return []string{text}
	}

	var values []string
	for i := 0; i < len(text); {
		offset := strings.IndexAny(text[i:], "[{")
		if offset < 0 {
			break
		}
		start := i + offset

		var raw json.RawMessage
		dec := json.NewDecoder(strings.NewReader(text[start:]))
		if err := dec.Decode(&raw); err != nil {
			i = start + 1
			continue
		}
		values = append(values, string(raw))
		i = start + int(dec.InputOffset())
	}
	return values
}
