// Package format renders counts, durations and ages for display
package format

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var isoDuration = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// Duration renders an ISO-8601 duration as H:MM:SS or M:SS; unparseable input gives "0:00"
func Duration(iso string) string {
	m := isoDuration.FindStringSubmatch(iso)
	if m == nil {
		return "0:00"
	}
	h, mi, s := atoi(m[1]), atoi(m[2]), atoi(m[3])
	if h > 0 {
		return strconv.Itoa(h) + ":" + pad2(mi) + ":" + pad2(s)
	}
	return strconv.Itoa(mi) + ":" + pad2(s)
}

// ViewCount renders "500 views", "6K views" or "1.2M views"
func ViewCount(count string) string { return Compact(count) + " views" }

// SubscriberCount renders "250K subscribers"
func SubscriberCount(count string) string { return Compact(count) + " subscribers" }

// Compact abbreviates a numeric string: thousands without decimals, millions with one
func Compact(count string) string {
	n, ok := leadingInt(count)
	if !ok {
		return "0"
	}
	switch {
	case n >= 1_000_000:
		return strconv.FormatFloat(math.Round(float64(n)/100_000)/10, 'f', 1, 64) + "M"
	case n >= 1_000:
		return strconv.FormatFloat(math.Round(float64(n)/1_000), 'f', 0, 64) + "K"
	default:
		return strconv.FormatInt(n, 10)
	}
}

var grouped = message.NewPrinter(language.English)

// Grouped renders the exact count with thousands separators, "45,678"
func Grouped(count string) string {
	n, ok := leadingInt(count)
	if !ok {
		return "0"
	}
	return grouped.Sprintf("%d", n)
}

const day = 24 * time.Hour

// TimeAgo renders the age of an RFC 3339 timestamp relative to now
// Months are 30 days and years 365; unparseable input gives "Unknown"
func TimeAgo(publishedAt string, now time.Time) string {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(publishedAt))
	if err != nil {
		return "Unknown"
	}
	days := int(math.Floor(float64(now.Sub(t)) / float64(day)))
	switch {
	case days <= 0:
		return "today"
	case days < 7:
		return plural(days, "day")
	case days < 30:
		return plural(days/7, "week")
	case days < 365:
		return plural(days/30, "month")
	default:
		return plural(days/365, "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return strconv.Itoa(n) + " " + unit + "s ago"
}

// leadingInt parses the leading digits of s, the way counts arrive from the Data API
func leadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	return n, err == nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
