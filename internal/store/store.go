package store

import "alcyxob/workout-map/internal/domain"

// Entry is one element of the workout list. Live workouts and records
// rehydrated from the flat store both satisfy it; only their data is
// reachable through this interface.
type Entry interface {
	Record() domain.Record
}

// Workouts is the ordered, in-memory list of workouts for a session.
// It is not safe for concurrent use; the owning controller serialises access.
type Workouts struct {
	entries []Entry
}

// New creates an empty list.
func New() *Workouts {
	return &Workouts{}
}

// Append adds e at the end. No dedup.
func (s *Workouts) Append(e Entry) {
	s.entries = append(s.entries, e)
}

// FindByID returns the first entry whose id matches.
func (s *Workouts) FindByID(id string) (Entry, bool) {
	for _, e := range s.entries {
		if e.Record().ID == id {
			return e, true
		}
	}
	return nil, false
}

// All returns the entries in insertion order. The slice is a copy.
func (s *Workouts) All() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// ReplaceAll swaps the contents for records, keeping their order.
func (s *Workouts) ReplaceAll(records []domain.Record) {
	s.entries = make([]Entry, 0, len(records))
	for _, r := range records {
		s.entries = append(s.entries, r)
	}
}

// Clear empties the list.
func (s *Workouts) Clear() {
	s.entries = nil
}

// Len reports the number of entries.
func (s *Workouts) Len() int {
	return len(s.entries)
}
