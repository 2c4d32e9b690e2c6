package domain

import (
	"fmt"
	"strconv"
	"time"
)

// idDigits is how many trailing digits of the millisecond clock make an id.
const idDigits = 10

// IDGenerator derives workout ids from a millisecond clock truncated to the
// last ten digits. Ids from one generator strictly increase: when the clock
// has not moved past the previous id, the previous id plus one is issued.
//
// The truncated clock wraps every 10^10 ms (about 116 days). After a wrap
// ids keep counting up from the last one issued or observed rather than
// following the clock, until the clock catches up again.
type IDGenerator struct {
	now  func() time.Time
	last int64
}

// NewIDGenerator creates a generator. A nil clock means time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now, last: -1}
}

// Next returns a new id.
func (g *IDGenerator) Next() string {
	n := g.now().UnixMilli() % 1e10
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return fmt.Sprintf("%0*d", idDigits, n%1e10)
}

// Observe makes later ids sort after id, e.g. one restored from storage.
// Ids that are not ten digits are ignored.
func (g *IDGenerator) Observe(id string) {
	if len(id) != idDigits {
		return
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n < 0 {
		return
	}
	if n > g.last {
		g.last = n
	}
}
