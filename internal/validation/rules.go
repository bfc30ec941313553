package validation

import (
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneCharset    = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)
	certCodePattern = regexp.MustCompile(`^C2C-\d{4}-\d{4}$`)
)

// MinPhoneDigits is the shortest accepted phone number once separators are removed.
const MinPhoneDigits = 10

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsEmail reports whether s has a local@domain.tld shape.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsPhone accepts digits with an optional leading '+', spaces, dashes and
// parentheses, as long as at least MinPhoneDigits digits remain.
func IsPhone(s string) bool {
	s = strings.TrimSpace(s)
	if !phoneCharset.MatchString(s) {
		return false
	}
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimPrefix(s, "+"))
	if len(stripped) < MinPhoneDigits {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsCertificateCode checks the event certificate format C2C-YYYY-NNNN.
func IsCertificateCode(s string) bool {
	return certCodePattern.MatchString(strings.TrimSpace(s))
}

// NormalizeEmail trims and lower-cases an address used as a natural key.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Label turns a JSON field name such as "firstName" or "college_name" into
// the "First name" / "College name" form used in messages.
func Label(field string) string {
	var b strings.Builder
	for i, r := range field {
		switch {
		case r == '_':
			b.WriteRune(' ')
			continue
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteRune(' ')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	label := b.String()
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
