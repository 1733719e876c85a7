package service

import (
	"fmt"
	"time"
)

// FormatCountdown renders a duration in whole seconds as the countdown
// string the quiz clients display between weekly rounds.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	return fmt.Sprintf("days: %d hours: %d minutes: %d seconds: %d", days, hours, minutes, secs)
}

// SecondsUntilWeekReset returns the whole seconds remaining until the
// next weekly rollover, which happens Monday at midnight in now's
// location.
func SecondsUntilWeekReset(now time.Time) int {
	daysAhead := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, daysAhead)

	return int(next.Sub(now).Seconds())
}
