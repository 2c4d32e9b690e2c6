package service

import (
	"context"
	"errors"

	"alcyxob/workout-map/internal/domain"
	"alcyxob/workout-map/internal/repository"
)

type viewCall struct {
	name   string
	center domain.Coords
	zoom   int
	opts   PanOptions
	marker Marker
	card   WorkoutCard
	text   string
}

// fakeView records every call in order; it plays both the map and the form.
type fakeView struct {
	calls []viewCall
}

func (v *fakeView) SetView(center domain.Coords, zoom int, opts PanOptions) {
	v.calls = append(v.calls, viewCall{name: "setView", center: center, zoom: zoom, opts: opts})
}

func (v *fakeView) AddMarker(m Marker) {
	v.calls = append(v.calls, viewCall{name: "marker", marker: m})
}

func (v *fakeView) ShowForm() { v.calls = append(v.calls, viewCall{name: "showForm"}) }
func (v *fakeView) HideForm() { v.calls = append(v.calls, viewCall{name: "hideForm"}) }

func (v *fakeView) RenderWorkout(card WorkoutCard) {
	v.calls = append(v.calls, viewCall{name: "card", card: card})
}

func (v *fakeView) Alert(message string) {
	v.calls = append(v.calls, viewCall{name: "alert", text: message})
}

func (v *fakeView) named(name string) []viewCall {
	var out []viewCall
	for _, c := range v.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func (v *fakeView) reset() { v.calls = nil }

// fakeLocator answers with pos or err.
type fakeLocator struct {
	pos domain.Coords
	err error
}

func (l *fakeLocator) CurrentPosition(ctx context.Context) (domain.Coords, error) {
	return l.pos, l.err
}

// fakeFlat is an in-memory flat store that can be told to fail.
type fakeFlat struct {
	values    map[string]string
	getErr    error
	setErr    error
	removeErr error
	sets      int
}

func newFakeFlat() *fakeFlat {
	return &fakeFlat{values: map[string]string{}}
}

func (f *fakeFlat) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.values[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}

func (f *fakeFlat) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	f.values[key] = value
	return nil
}

func (f *fakeFlat) Remove(ctx context.Context, key string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.values, key)
	return nil
}

var errBackend = errors.New("backend down")
