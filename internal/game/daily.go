package game

import "time"

// The daily challenge rolls over at Pacific midnight; every player in
// the world shares that calendar.
var pacific = func() *time.Location {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		return time.FixedZone("PST", -8*60*60)
	}
	return loc
}()

// DailyKey returns the seed key for the daily challenge containing the
// given instant. Two DailyKey-seeded sessions on the same Pacific day
// play the identical round sequence.
func DailyKey(now time.Time) string {
	return now.In(pacific).Format("2006-01-02")
}
