// Package validate holds the UAE-locale pattern predicates shared by the
// customer endpoints.
package validate

import (
	"regexp"
)

var (
	// uaeMobileRe matches +971 followed by exactly 9 digits.
	uaeMobileRe = regexp.MustCompile(`^\+971[0-9]{9}$`)

	// trnRe matches a UAE Tax Registration Number: exactly 15 digits
	// beginning with 1.
	trnRe = regexp.MustCompile(`^1[0-9]{14}$`)
)

func UAEMobile(s string) bool {
	return uaeMobileRe.MatchString(s)
}

func TRN(s string) bool {
	return trnRe.MatchString(s)
}
