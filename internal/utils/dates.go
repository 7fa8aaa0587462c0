package utils

import (
	"strconv"
	"strings"
	"time"
)

var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthAndYear renders a YYYY-MM month key as a Spanish label, e.g.
// "2025-01" -> "Enero 2025". Malformed input renders as "".
func MonthAndYear(monthKey string) string {
	parts := strings.Split(monthKey, "-")
	if len(parts) != 2 {
		return ""
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil || year <= 0 {
		return ""
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return ""
	}

	return spanishMonths[month-1] + " " + parts[0]
}

// MonthKey formats t as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// NextMonthKey is the YYYY-MM key of the month after t.
func NextMonthKey(t time.Time) string {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, 0).
		Format("2006-01")
}

// ParseMonthKey parses a YYYY-MM key into the first day of that month.
func ParseMonthKey(monthKey string) (time.Time, error) {
	return time.Parse("2006-01", monthKey)
}

// ParseDate parses the YYYY-MM-DD wire format used by the dashboard forms.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}
