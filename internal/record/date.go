package record

import "regexp"

var datePattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

// IsDate reports whether s has the dd-mm-yyyy display shape.
// Only the digit/dash shape is checked: "31-02-2023" passes.
func IsDate(s string) bool {
	return datePattern.MatchString(s)
}

// DateKey turns a dd-mm-yyyy date into a yyyymmdd key that sorts
// chronologically. ok is false when s is not a display date.
func DateKey(s string) (key string, ok bool) {
	if !IsDate(s) {
		return "", false
	}
	return s[6:10] + s[3:5] + s[0:2], true
}
