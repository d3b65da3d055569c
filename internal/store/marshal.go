package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// marshalVariables serializes the declared variable list as a JSON array.
// A nil slice is stored as the empty array, never as JSON null.
func marshalVariables(variables []string) (string, error) {
	if variables == nil {
		variables = []string{}
	}
	data, err := json.Marshal(variables)
	if err != nil {
		return "", fmt.Errorf("marshal variables: %w", err)
	}
	return string(data), nil
}

// unmarshalVariables parses the JSON array form back to a slice.
func unmarshalVariables(data string) ([]string, error) {
	var variables []string
	if err := json.Unmarshal([]byte(data), &variables); err != nil {
		return nil, fmt.Errorf("unmarshal variables: %w", err)
	}
	return variables, nil
}

// formatTime renders a timestamp in the stored RFC 3339 UTC form.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses the stored RFC 3339 form.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
