package timeutil

import (
	"fmt"
	"time"
)

// FormatElapsed renders a duration as H:MM:SS, e.g. 1:10:00.
func FormatElapsed(value time.Duration) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	total := int64(value / time.Second)
	return fmt.Sprintf("%s%d:%02d:%02d", sign, total/3600, (total/60)%60, total%60)
}

// HoursFrom returns the decimal hours of value.
func HoursFrom(value time.Duration) float64 {
	return value.Seconds() / 3600
}
