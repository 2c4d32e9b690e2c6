package domain

import (
	"fmt"
	"strings"
	"time"
)

// Describe renders "<Type> on <Month> <Day>" using date's own location.
func Describe(t WorkoutType, date time.Time) string {
	name := string(t)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("%s on %s %d", name, date.Month(), date.Day())
}
