// Package clock supplies the current time behind an interface so that
// classification and cache expiry can be tested against fixed instants.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by time.Now.
func System() Clock { return systemClock{} }

// Func adapts a plain function to the Clock interface.
type Func func() time.Time

// Now implements Clock.
func (f Func) Now() time.Time { return f() }
