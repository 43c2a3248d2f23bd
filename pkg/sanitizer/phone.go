package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Regions tried when parsing a phone number without a country prefix.
var supportedRegions = []string{
	"CZ",
	"US",
}

// NormalizePhone formats a recognized phone number to E.164 so the same
// renter always maps to the same stored key. Numbers no region recognizes
// keep their digits unchanged; format validation is the validator's job.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}

	return compactPhone(phone)
}

// compactPhone strips spacing and punctuation, keeping digits and a single
// leading plus.
func compactPhone(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
