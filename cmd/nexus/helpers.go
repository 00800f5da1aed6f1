package main

import (
	"strings"
	"time"

	"nexus/internal/pendency"
)

// displayTime shortens a stored timestamp for table output. Unparseable
// values pass through untouched.
func displayTime(stamp string) string {
	t, err := time.Parse(pendency.TimeLayout, stamp)
	if err != nil {
		return stamp
	}
	return t.Format("02/01/2006 15:04")
}

func truncate(value string, max int) string {
	if max <= 3 || len([]rune(value)) <= max {
		return value
	}
	runes := []rune(value)
	return string(runes[:max-3]) + "..."
}

func dash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
