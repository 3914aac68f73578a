package email

import (
	"net/mail"
	"strings"
	"unicode"
)

// GreetingName derives a first name from an email's local part for use in
// salutations: "rahim.uddin@example.com" becomes "Rahim". Unusable input
// yields "there", as in "Hi there".
func GreetingName(email string) string {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+' || unicode.IsDigit(r)
	})
	if len(parts) == 0 {
		return "there"
	}
	return capitalize(parts[0])
}

// Valid reports whether s is a bare address such as "a@b.org".
func Valid(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
