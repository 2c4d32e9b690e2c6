package service

import (
	"strconv"

	"alcyxob/workout-map/internal/domain"
)

// Icons used by the map popups and the list cards.
const (
	iconRunning   = "🏃‍♂️"
	iconCycling   = "🚴‍♀️"
	iconDuration  = "⏱"
	iconMetric    = "⚡️"
	iconCadence   = "🦶🏼"
	iconElevation = "⛰"
)

// PanOptions tunes a map view change.
type PanOptions struct {
	Animate     bool    `json:"animate"`
	PanDuration float64 `json:"panDuration,omitempty"` // seconds
}

// Marker is a map marker with an always-open popup.
type Marker struct {
	Coords       domain.Coords `json:"coords"`
	Popup        string        `json:"popup"`
	ClassName    string        `json:"className"`
	MaxWidth     int           `json:"maxWidth"`
	MinWidth     int           `json:"minWidth"`
	AutoClose    bool          `json:"autoClose"`
	CloseOnClick bool          `json:"closeOnClick"`
}

// Detail is one icon/value/unit line of a list card.
type Detail struct {
	Icon  string `json:"icon"`
	Value string `json:"value"`
	Unit  string `json:"unit"`
}

// WorkoutCard is the list entry for one workout.
type WorkoutCard struct {
	ID      string             `json:"id"`
	Type    domain.WorkoutType `json:"type"`
	Title   string             `json:"title"`
	Details []Detail           `json:"details"`
}

// NewMarker builds the marker for a workout from its data only.
func NewMarker(r domain.Record) Marker {
	return Marker{
		Coords:       r.Coords,
		Popup:        typeIcon(r.Type) + " " + r.Description,
		ClassName:    string(r.Type) + "-popup",
		MaxWidth:     250,
		MinWidth:     100,
		AutoClose:    false,
		CloseOnClick: false,
	}
}

// NewWorkoutCard builds the list card from the record's stored fields.
// Derived metrics are rounded to one decimal here and nowhere else.
func NewWorkoutCard(r domain.Record) WorkoutCard {
	card := WorkoutCard{
		ID:    r.ID,
		Type:  r.Type,
		Title: r.Description,
		Details: []Detail{
			{Icon: typeIcon(r.Type), Value: number(r.Distance), Unit: "km"},
			{Icon: iconDuration, Value: number(r.Duration), Unit: "min"},
		},
	}
	switch r.Type {
	case domain.WorkoutRunning:
		card.Details = append(card.Details,
			Detail{Icon: iconMetric, Value: fixed1(r.Pace), Unit: "min/km"},
			Detail{Icon: iconCadence, Value: optional(r.Cadence), Unit: "spm"},
		)
	case domain.WorkoutCycling:
		card.Details = append(card.Details,
			Detail{Icon: iconMetric, Value: fixed1(r.Speed), Unit: "km/h"},
			Detail{Icon: iconElevation, Value: optional(r.ElevationGain), Unit: "m"},
		)
	}
	return card
}

func typeIcon(t domain.WorkoutType) string {
	if t == domain.WorkoutRunning {
		return iconRunning
	}
	return iconCycling
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Missing variant fields on a stored record render as an empty value.
func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return number(*v)
}

func fixed1(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}
