package templates

import (
	"strconv"
	"strings"
	"time"
)

// Placeholders used in generated text when a field is empty.
const (
	PlaceholderCustomer = "[Customer Name]"
	PlaceholderBusiness = "[Business Name]"
	PlaceholderService  = "[Service]"
	PlaceholderDate     = "[Date]"
	PlaceholderTime     = "[Time]"

	// Printable cards leave blanks to fill in by hand instead.
	CardBlankLong = "_______________"
	CardBlankTime = "______"
)

const longDateLayout = "Monday, January 2, 2006"

// FormatDate renders a YYYY-MM-DD date as "Monday, March 18, 2025", or
// [Date] when empty.
func FormatDate(dateStr string) string {
	return FormatDateOr(dateStr, PlaceholderDate)
}

// FormatCardDate is FormatDate with the printable-card blank.
func FormatCardDate(dateStr string) string {
	return FormatDateOr(dateStr, CardBlankLong)
}

// FormatDateOr renders dateStr or returns placeholder when it is empty.
// Input that is not a calendar date is returned unchanged.
func FormatDateOr(dateStr, placeholder string) string {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return placeholder
	}
	// A bare date parses as midnight UTC and is formatted in UTC, so the
	// calendar day never shifts.
	d, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return dateStr
	}
	return d.Format(longDateLayout)
}

// FormatTime converts 24-hour HH:MM to 12-hour "H:MM AM", or [Time] when empty.
func FormatTime(timeStr string) string {
	return FormatTimeOr(timeStr, PlaceholderTime)
}

// FormatCardTime is FormatTime with the printable-card blank.
func FormatCardTime(timeStr string) string {
	return FormatTimeOr(timeStr, CardBlankTime)
}

// FormatTimeOr converts timeStr or returns placeholder when it is empty.
// Input that is not HH:MM is returned unchanged.
func FormatTimeOr(timeStr, placeholder string) string {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return placeholder
	}
	hh, mm, found := strings.Cut(timeStr, ":")
	if !found || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 || !isDigits(hh) || !isDigits(mm) {
		return timeStr
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return timeStr
	}
	if minute, err := strconv.Atoi(mm); err != nil || minute < 0 || minute > 59 {
		return timeStr
	}
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return strconv.Itoa(hour) + ":" + mm + " " + period
}

func orPlaceholder(value, placeholder string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return placeholder
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
