package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("America/Denver")
	if err != nil {
		panic(err)
	}
}

// force the timezone to Denver because the portal renders all due dates in
// the school's local time, and our servers are not guaranteed to run there.
func Now() time.Time {
	return time.Now().In(Location)
}
