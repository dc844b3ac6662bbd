package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

// ISO-8601 durations as the Data API emits them: P[nD]T[nH][nM][nS], plus the
// rare week form. Fractional seconds are truncated.
var durationPattern = regexp.MustCompile(
	`^P(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)(?:\.\d+)?S)?)?$`)

// ParseISODuration converts an ISO-8601 duration string to whole seconds.
func ParseISODuration(s string) (int64, error) {
	match := durationPattern.FindStringSubmatch(s)
	if match == nil || s == "P" || s == "PT" {
		return 0, fmt.Errorf("unparsable ISO-8601 duration: %q", s)
	}

	part := func(idx int) int64 {
		if match[idx] == "" {
			return 0
		}
		v, _ := strconv.ParseInt(match[idx], 10, 64)
		return v
	}

	weeks := part(1)
	days := part(2)
	hours := part(3)
	minutes := part(4)
	seconds := part(5)

	return ((weeks*7+days)*24+hours)*3600 + minutes*60 + seconds, nil
}
