package booking

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseTimeOfDay converts an "HH:MM" clock string to minutes from midnight.
func parseTimeOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// formatTimeOfDay renders minutes from midnight as an "HH:MM" clock string.
func formatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// parseBookingDate validates a "YYYY-MM-DD" date and returns its weekday
// (0 = Sunday ... 6 = Saturday). Date and time-of-day are stored and compared
// independently within the booking's stated timezone; they are never combined
// into an instant, so DST shifts cannot move a slot.
func parseBookingDate(date string) (int, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return int(t.Weekday()), nil
}

// validateTimezone checks that tz is a known IANA timezone name.
func validateTimezone(tz string) error {
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", tz, err)
	}
	return nil
}
