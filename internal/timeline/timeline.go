// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package timeline derives time-relative flags (upcoming, days remaining,
// countdown visibility) from stored timestamps. Every function takes the
// current instant explicitly so callers and tests control the clock.
package timeline

import "time"

const day = 24 * time.Hour

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// IsUpcoming reports whether at is strictly after now.
func IsUpcoming(at, now time.Time) bool {
	return at.After(now)
}

// DaysRemaining returns the whole number of days from now until target,
// rounded down. It is 0 once target is reached or passed.
func DaysRemaining(target, now time.Time) int {
	if !target.After(now) {
		return 0
	}
	return int(target.Sub(now) / day)
}

// IsCountdownLive reports whether a countdown should be displayed: it must
// be active and at least one full day must remain.
func IsCountdownLive(active bool, target, now time.Time) bool {
	return active && DaysRemaining(target, now) > 0
}
