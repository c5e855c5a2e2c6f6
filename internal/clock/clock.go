package clock

import "time"

// Clock supplies the current time so that timestamp stamping stays
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// System reads the real system clock.
type System struct{}

// Now returns the current system time.
func (System) Now() time.Time {
	return time.Now()
}

// Fixed is a test clock that returns a settable instant.
type Fixed struct {
	current time.Time
}

// NewFixed creates a Fixed clock starting at t.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{current: t}
}

// Now returns the clock's current instant.
func (f *Fixed) Now() time.Time {
	return f.current
}

// Set moves the clock to t.
func (f *Fixed) Set(t time.Time) {
	f.current = t
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.current = f.current.Add(d)
}
