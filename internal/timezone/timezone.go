package timezone

import "time"

// The shop runs on a single local calendar; "today" comparisons for delivery
// dates and ledger entries are made in this zone.
const DefaultTimezone = "America/Bogota"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Today truncates the shop-local now to a date.
func Today(tz string) time.Time {
	return DateOf(NowIn(tz))
}

// DateOf drops the time-of-day component, keeping the location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
