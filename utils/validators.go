package utils

import (
	"regexp"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidPassword(password string) bool {
	return len(password) >= 6
}

// IsValidDate accepts YYYY-MM-DD only.
func IsValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// Today returns the current date in the same YYYY-MM-DD form the
// travel and user tables store, so string comparison orders correctly.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// IsPastDate reports whether date sorts strictly before today. An
// unparseable date is not "past"; format errors are reported separately.
func IsPastDate(date string) bool {
	return IsValidDate(date) && date < Today()
}
