package utils

import (
	"time"
)

// IsTimestampStale checks if a timestamp is older than the specified duration
func IsTimestampStale(timestamp time.Time, staleDuration time.Duration) bool {
	return time.Since(timestamp) > staleDuration
}

// AgeOf returns how long ago the given unix-seconds timestamp was recorded.
func AgeOf(unixSeconds int64) time.Duration {
	return time.Since(time.Unix(unixSeconds, 0))
}

// HoursAgo returns a time that is the specified number of hours ago
func HoursAgo(hours int) time.Time {
	return time.Now().Add(-time.Duration(hours) * time.Hour)
}
