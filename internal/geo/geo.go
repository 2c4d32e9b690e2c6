// Package geo provides server-side geolocation.
package geo

import (
	"context"

	"alcyxob/workout-map/internal/domain"
)

// Fixed always reports the same position, e.g. a configured home location.
type Fixed struct {
	Position domain.Coords
}

// NewFixed creates a Fixed locator.
func NewFixed(lat, lng float64) *Fixed {
	return &Fixed{Position: domain.Coords{lat, lng}}
}

// CurrentPosition returns the fixed position unless ctx is already done.
func (f *Fixed) CurrentPosition(ctx context.Context) (domain.Coords, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coords{}, err
	}
	return f.Position, nil
}
