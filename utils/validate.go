package utils

import (
	"regexp"
)

var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
