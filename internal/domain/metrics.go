package domain

// Pace is minutes per kilometer. A zero distance yields +Inf (or NaN when the
// duration is zero as well); callers validate before constructing.
func Pace(distance, duration float64) float64 {
	return duration / distance
}

// Speed is kilometers per hour.
func Speed(distance, duration float64) float64 {
	return distance / (duration / 60)
}
