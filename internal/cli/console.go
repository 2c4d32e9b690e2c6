package cli

import (
	"fmt"
	"io"
	"strings"

	"alcyxob/workout-map/internal/domain"
	"alcyxob/workout-map/internal/service"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// consoleView prints what the map and the workout list would show.
type consoleView struct {
	out io.Writer
	// cards counts rendered list entries.
	cards int
}

func newConsoleView(out io.Writer) *consoleView {
	return &consoleView{out: out}
}

func (v *consoleView) SetView(center domain.Coords, zoom int, opts service.PanOptions) {
	fmt.Fprintf(v.out, "%smap at %.5f, %.5f (zoom %d)%s\n", colorGray, center.Lat(), center.Lng(), zoom, colorReset)
}

func (v *consoleView) AddMarker(m service.Marker) {
	fmt.Fprintf(v.out, "%s📍 %s at %.5f, %.5f%s\n", colorGray, m.Popup, m.Coords.Lat(), m.Coords.Lng(), colorReset)
}

// The form is the command line itself.
func (v *consoleView) ShowForm() {}
func (v *consoleView) HideForm() {}

func (v *consoleView) RenderWorkout(card service.WorkoutCard) {
	v.cards++
	details := make([]string, 0, len(card.Details))
	for _, d := range card.Details {
		details = append(details, strings.TrimSpace(fmt.Sprintf("%s %s %s", d.Icon, d.Value, d.Unit)))
	}
	fmt.Fprintf(v.out, "%s%s%s %s[%s]%s\n  %s\n",
		colorBold, card.Title, colorReset, colorCyan, card.ID, colorReset, strings.Join(details, "  "))
}

func (v *consoleView) Alert(message string) {
	fmt.Fprintf(v.out, "%s✗%s %s\n", colorRed, colorReset, message)
}

func (v *consoleView) success(message string) {
	fmt.Fprintf(v.out, "%s✓%s %s\n", colorGreen, colorReset, message)
}

func (v *consoleView) info(message string) {
	fmt.Fprintf(v.out, "  %s\n", message)
}
