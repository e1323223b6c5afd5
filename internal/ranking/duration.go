package ranking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseDurationMinutes converts "H:MM:SS" or "MM:SS" into whole minutes. Seconds are ignored and
// missing or unparsable parts count as zero.
func ParseDurationMinutes(duration string) int {
	parts := strings.Split(strings.TrimSpace(duration), ":")
	// reverse so index 0 is seconds, 1 minutes, 2 hours
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	minutes := 0
	if len(parts) > 1 {
		minutes += leadingInt(parts[1])
	}
	if len(parts) > 2 {
		minutes += leadingInt(parts[2]) * 60
	}
	return minutes
}

// leadingInt parses the leading digits of s, returning 0 when there are none.
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// FormatISODuration converts an ISO 8601 duration such as "PT1H2M3S" to "1:02:03", or "PT4M5S" to "4:05".
// Unrecognized input yields an empty string.
func FormatISODuration(iso string) string {
	iso = strings.TrimSpace(iso)
	m := isoDurationRe.FindStringSubmatch(iso)
	if m == nil || iso == "P" || iso == "PT" {
		return ""
	}
	days, _ := strconv.Atoi(orZero(m[1]))
	hours, _ := strconv.Atoi(orZero(m[2]))
	minutes, _ := strconv.Atoi(orZero(m[3]))
	seconds, _ := strconv.Atoi(orZero(m[4]))
	hours += days * 24

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
