package services

import (
	"fmt"
	"time"
)

// AvailabilityWindow is a typed option for how long a user stays marked as
// available for discovery. Each option carries its duration directly —
// semantics are never derived from display labels.
type AvailabilityWindow string

const (
	WindowOneHour    AvailabilityWindow = "ONE_HOUR"
	WindowThreeHours AvailabilityWindow = "THREE_HOURS"
	WindowSixHours   AvailabilityWindow = "SIX_HOURS"
)

var windowDurations = map[AvailabilityWindow]time.Duration{
	WindowOneHour:    1 * time.Hour,
	WindowThreeHours: 3 * time.Hour,
	WindowSixHours:   6 * time.Hour,
}

// ParseAvailabilityWindow validates a wire value into a window option.
func ParseAvailabilityWindow(raw string) (AvailabilityWindow, error) {
	w := AvailabilityWindow(raw)
	if _, ok := windowDurations[w]; !ok {
		return "", fmt.Errorf("unknown availability window %q", raw)
	}
	return w, nil
}

// Duration returns the wall-clock length of the window.
func (w AvailabilityWindow) Duration() time.Duration {
	return windowDurations[w]
}
