package anim

import "math"

// DelayScheduler spreads a fractional per-frame delay over integer
// centisecond delays so that the running total tracks the ideal.
type DelayScheduler struct {
	floor   int
	rem     float64
	acc     float64
	last    int
	perfect bool
}

// NewDelayScheduler returns a scheduler for the given frames per second.
// Rates at or below zero are treated as 1.
func NewDelayScheduler(rate float64) *DelayScheduler {
	if !(rate > 0) {
		rate = 1
	}
	ideal := 100 / rate
	floor := math.Floor(ideal)
	rem := floor - ideal
	return &DelayScheduler{
		floor:   int(floor),
		rem:     rem,
		last:    int(floor),
		perfect: rem == 0,
	}
}

// Next returns the delay for the next frame in centiseconds.
func (d *DelayScheduler) Next() int {
	d.last = d.next()
	return d.last
}

func (d *DelayScheduler) next() int {
	if d.perfect {
		return d.floor
	}
	d.acc += math.Abs(d.rem)
	if d.acc >= 0.5 {
		d.acc--
		return d.floor + 1
	}
	return d.floor
}

// Last returns the most recently emitted delay, or the base delay before
// the first call to Next.
func (d *DelayScheduler) Last() int { return d.last }
