package engine

import "time"

// Clock supplies the engine's notion of "now". It is injected so tests can
// simulate arbitrary elapsed time; the engine itself never calls time.Now.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
