// Package codec converts the workout list to and from the flat string kept
// in the key-value store.
package codec

import (
	"encoding/json"
	"strings"

	"alcyxob/workout-map/internal/domain"
	"alcyxob/workout-map/internal/store"
)

// Key is the flat-store key holding the serialized list.
const Key = "workouts"

// Encode serializes every entry field by field, derived fields included.
func Encode(entries []store.Entry) (string, error) {
	records := make([]domain.Record, len(entries))
	for i, e := range entries {
		records[i] = e.Record()
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses raw back into plain records, in stored order. Empty input,
// JSON null and malformed input all report false: nothing to restore.
func Decode(raw string) ([]domain.Record, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, false
	}
	var records []domain.Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, false
	}
	if records == nil {
		return nil, false
	}
	return records, true
}
