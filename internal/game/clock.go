package game

import "time"

// Clock is the wall-clock source. Tests substitute a manual clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// FrameClock measures real elapsed seconds between ticks.
type FrameClock struct {
	clock Clock
	last  time.Time
}

// NewFrameClock starts measuring from the current time of clock.
func NewFrameClock(clock Clock) *FrameClock {
	return &FrameClock{clock: clock, last: clock.Now()}
}

// Tick returns the seconds elapsed since the previous Tick.
func (f *FrameClock) Tick() float64 {
	now := f.clock.Now()
	dt := now.Sub(f.last).Seconds()
	f.last = now
	if dt < 0 {
		return 0
	}
	return dt
}
