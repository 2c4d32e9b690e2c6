package api

import (
	"alcyxob/workout-map/internal/domain"
	"alcyxob/workout-map/internal/service"
)

// Command kinds sent back to the browser.
const (
	CommandSetView  = "setView"
	CommandMarker   = "addMarker"
	CommandShowForm = "showForm"
	CommandHideForm = "hideForm"
	CommandRender   = "renderWorkout"
	CommandAlert    = "alert"
)

// ViewCommand is one instruction for the page: move the map, drop a marker,
// toggle the form, append a list card or show an alert.
type ViewCommand struct {
	Kind    string               `json:"kind"`
	Center  *domain.Coords       `json:"center,omitempty"`
	Zoom    int                  `json:"zoom,omitempty"`
	Options *service.PanOptions  `json:"options,omitempty"`
	Marker  *service.Marker      `json:"marker,omitempty"`
	Card    *service.WorkoutCard `json:"card,omitempty"`
	Message string               `json:"message,omitempty"`
}

// ViewRecorder stands in for the map and the form on the server side. It
// queues every view call the tracker makes until the handler drains them into
// the response.
type ViewRecorder struct {
	commands []ViewCommand
}

func NewViewRecorder() *ViewRecorder {
	return &ViewRecorder{}
}

func (r *ViewRecorder) SetView(center domain.Coords, zoom int, opts service.PanOptions) {
	r.commands = append(r.commands, ViewCommand{Kind: CommandSetView, Center: &center, Zoom: zoom, Options: &opts})
}

func (r *ViewRecorder) AddMarker(m service.Marker) {
	r.commands = append(r.commands, ViewCommand{Kind: CommandMarker, Marker: &m})
}

func (r *ViewRecorder) ShowForm() {
	r.commands = append(r.commands, ViewCommand{Kind: CommandShowForm})
}

func (r *ViewRecorder) HideForm() {
	r.commands = append(r.commands, ViewCommand{Kind: CommandHideForm})
}

func (r *ViewRecorder) RenderWorkout(card service.WorkoutCard) {
	r.commands = append(r.commands, ViewCommand{Kind: CommandRender, Card: &card})
}

func (r *ViewRecorder) Alert(message string) {
	r.commands = append(r.commands, ViewCommand{Kind: CommandAlert, Message: message})
}

// Drain returns the queued commands in call order and empties the queue.
func (r *ViewRecorder) Drain() []ViewCommand {
	out := r.commands
	r.commands = nil
	if out == nil {
		out = []ViewCommand{}
	}
	return out
}
