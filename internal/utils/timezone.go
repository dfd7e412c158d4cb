package utils

import "time"

// LocationOrUTC resolves an IANA timezone name, falling back to UTC when
// the name is unknown or empty.
func LocationOrUTC(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}
