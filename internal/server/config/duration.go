package config

import (
	"strconv"
	"strings"
	"time"
)

// ParseDuration parses a Go duration string, additionally accepting a "d"
// suffix for whole days ("7d" == 168h). time.ParseDuration has no day unit,
// but token lifetimes are conventionally configured in days.
func ParseDuration(s string) (time.Duration, error) {
	if v, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(days) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(s)
}
