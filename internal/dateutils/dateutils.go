// Package dateutils provides the date handling shared by the ingestion
// pipeline: report-date parsing, the formats the NRLDC endpoints expect,
// and an IST clock (the report calendar is Indian Standard Time).
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date format constants.
const (
	DateLayoutISO   = "2006-01-02" // database keys, snapshot artifact
	DateLayoutQuery = "02-01-2006" // NRLDC listing query parameters
)

// IST is Indian Standard Time (UTC+05:30). A fixed zone keeps the binary
// independent of the host tzdata.
var IST = time.FixedZone("IST", 5*3600+30*60)

// reportDateFormats are the layouts accepted for user-supplied report dates.
var reportDateFormats = []string{
	DateLayoutISO,
	DateLayoutQuery,
	"02/01/2006",
	"2006/01/02",
}

// TodayIST returns the current date in IST, truncated to midnight.
func TodayIST() time.Time {
	now := time.Now().In(IST)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, IST)
}

// ParseReportDate parses a report date in any of the accepted layouts.
func ParseReportDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, format := range reportDateFormats {
		if t, err := time.ParseInLocation(format, dateStr, IST); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse report date: %s", dateStr)
}

// ToISODate formats a date as YYYY-MM-DD.
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// ToQueryDate formats a date as DD-MM-YYYY for the listing endpoint.
func ToQueryDate(date time.Time) string {
	return date.Format(DateLayoutQuery)
}

// IsWeekend checks if a date falls on a Saturday or Sunday. The report is
// frequently not published on weekends and public holidays.
func IsWeekend(date time.Time) bool {
	day := date.Weekday()
	return day == time.Saturday || day == time.Sunday
}
