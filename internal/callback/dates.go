package callback

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/harunnryd/notedesk/internal/errors"
)

const dateLayout = "2006-01-02"

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Today is the calendar date of now in now's own location.
func Today(now time.Time) string {
	return now.Format(dateLayout)
}

// ValidateDate checks a YYYY-MM-DD string names a real day between 1900
// and 2100.
func ValidateDate(date string) error {
	if !datePattern.MatchString(date) {
		return errors.InvalidInput("Invalid date format. Please use YYYY-MM-DD")
	}
	year, _ := strconv.Atoi(date[0:4])
	month, _ := strconv.Atoi(date[5:7])
	day, _ := strconv.Atoi(date[8:10])

	if year < 1900 || year > 2100 || month < 1 || month > 12 || day < 1 {
		return errors.InvalidInput("Invalid date. Please enter a valid date.")
	}
	if day > daysIn(year, month) {
		return errors.InvalidInput("Invalid date. Please enter a valid date.")
	}
	return nil
}

func daysIn(year, month int) int {
	days := [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if month == 2 && year%4 == 0 && (year%100 != 0 || year%400 == 0) {
		return 29
	}
	return days[month-1]
}

// ValidateTime accepts an empty string or a 24-hour HH:MM.
func ValidateTime(hhmm string) error {
	if hhmm == "" || timePattern.MatchString(hhmm) {
		return nil
	}
	return errors.InvalidInput(fmt.Sprintf("Invalid time %q. Please use HH:MM", hhmm))
}

// AddDays shifts a calendar date by n days without touching time zones.
func AddDays(date string, n int) (string, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(dateLayout), nil
}

// WeekBounds returns the Sunday and Saturday around date.
func WeekBounds(date string) (start, end string, err error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", "", err
	}
	sunday := t.AddDate(0, 0, -int(t.Weekday()))
	return sunday.Format(dateLayout), sunday.AddDate(0, 0, 6).Format(dateLayout), nil
}

// FormatLong renders YYYY-MM-DD as "March 13, 2024".
func FormatLong(date string) string {
	if !datePattern.MatchString(date) {
		return "Invalid Date"
	}
	month, _ := strconv.Atoi(date[5:7])
	day, _ := strconv.Atoi(date[8:10])
	if month < 1 || month > 12 {
		return "Invalid Date"
	}
	return fmt.Sprintf("%s %d, %s", monthNames[month-1], day, date[0:4])
}
