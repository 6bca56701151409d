package notionsync

import (
	"fmt"
	"strings"
	"time"

	"canvassync/lib/timezone"
)

// layouts observed across the portal's assignment, quiz and announcement
// templates, after lead-in stripping
var dueLayoutsWithYear = []string{
	"Mon Jan 2, 2006 3:04pm",
	"Jan 2, 2006 3:04pm",
	"Mon Jan 2, 2006",
	"Jan 2, 2006",
}

var dueLayoutsNoYear = []string{
	"Mon Jan 2 3:04pm",
	"Jan 2 at 3:04pm",
	"Jan 2 3:04pm",
	"Jan 2",
}

// ParseDueText turns the free-form due text into an absolute instant in the
// portal's timezone, anchored at `now` for strings that carry no year.
func ParseDueText(text string, now time.Time) (time.Time, error) {
	text = strings.Trim(text, " \t\n")

	for _, layout := range dueLayoutsWithYear {
		t, err := time.ParseInLocation(layout, text, timezone.Location)
		if err == nil {
			return t, nil
		}
	}
	for _, layout := range dueLayoutsNoYear {
		t, err := time.ParseInLocation(layout, text, timezone.Location)
		if err == nil {
			return resolveYear(t, now), nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable due text '%s'", text)
}

// a date without a year belongs to the school year the anchor sits in:
// fall months seen in spring refer to the previous year, spring months seen
// in fall refer to the next.
func resolveYear(t, now time.Time) time.Time {
	year := now.Year()
	if (t.Month() >= time.August && t.Month() <= time.December) &&
		(now.Month() < time.June && now.Month() >= time.January) {
		year--
	}
	if (t.Month() >= time.January && t.Month() < time.June) &&
		(now.Month() >= time.August && now.Month() <= time.December) {
		year++
	}
	return time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, timezone.Location)
}
