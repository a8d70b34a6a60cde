// Package report decodes and inspects the context report an installer prints
// for --print-context-only.
package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"mambaprobe/internal/condactx"
)

var (
	ErrMarkers    = errors.New("context markers not found")
	ErrMissingKey = errors.New("key not in report")
	ErrWrongType  = errors.New("unexpected value type")
)

// Report maps configuration names to JSON-typed values: bool, float64,
// string, []any, map[string]any or nil
type Report map[string]any

// DecodeError is returned when installer output is not a context report
type DecodeError struct {
	Err    error
	Output string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode context report: %v\noutput: %s", e.Err, e.Output)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses installer output. A block delimited by the context markers is
// read as YAML; otherwise the whole output must be one JSON object. Output
// carrying only one of the markers is an ErrMarkers.
func Decode(data []byte) (Report, error) {
	if bytes.Contains(data, []byte(condactx.BeginMarker)) || bytes.Contains(data, []byte(condactx.EndMarker)) {
		return decodeMarkers(data)
	}

	var r Report
	if err := json.Unmarshal(bytes.TrimSpace(data), &r); err != nil {
		return nil, &DecodeError{Err: err, Output: string(data)}
	}
	if r == nil {
		return nil, &DecodeError{Err: errors.New("report is not a JSON object"), Output: string(data)}
	}
	return r, nil
}

func decodeMarkers(data []byte) (Report, error) {
	var block []string
	inside, closed := false, false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case !inside && line == condactx.BeginMarker:
			inside = true
		case inside && line == condactx.EndMarker:
			closed = true
		case inside:
			block = append(block, strings.TrimRight(scanner.Text(), "\r"))
		}
		if closed {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &DecodeError{Err: err, Output: string(data)}
	}
	if !inside || !closed {
		return nil, &DecodeError{Err: ErrMarkers, Output: string(data)}
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(strings.Join(block, "\n")), &raw); err != nil {
		return nil, &DecodeError{Err: err, Output: string(data)}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	normalized, err := Normalize(raw)
	if err != nil {
		return nil, &DecodeError{Err: err, Output: string(data)}
	}
	return Report(normalized.(map[string]any)), nil
}

// Normalize converts v to the types encoding/json produces when decoding
// into an interface value
func Normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize value: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to normalize value: %w", err)
	}
	return out, nil
}

// Has reports whether key is present
func (r Report) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Bool returns a boolean value
func (r Report) Bool(key string) (bool, error) {
	v, err := r.lookup(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, wrongType(key, "bool", v)
	}
	return b, nil
}

// String returns a string value
func (r Report) String(key string) (string, error) {
	v, err := r.lookup(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", wrongType(key, "string", v)
	}
	return s, nil
}

// Int returns a whole number value
func (r Report) Int(key string) (int, error) {
	v, err := r.lookup(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	case int:
		return n, nil
	}
	return 0, wrongType(key, "int", v)
}

// Strings returns a sequence of strings
func (r Report) Strings(key string) ([]string, error) {
	v, err := r.lookup(key)
	if err != nil {
		return nil, err
	}

	switch items := v.(type) {
	case []string:
		return items, nil
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, wrongType(key, "[]string", v)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, wrongType(key, "[]string", v)
}

func (r Report) lookup(key string) (any, error) {
	v, ok := r[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	return v, nil
}

func wrongType(key, want string, got any) error {
	return fmt.Errorf("%w: %s is %T, want %s", ErrWrongType, key, got, want)
}
