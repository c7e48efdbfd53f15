// Package validation holds the pure input checks for invite submissions:
// phone list format and GSM 7-bit message encoding. It performs no IO.
package validation

import (
	"regexp"
	"unicode/utf8"

	"github.com/smsinvite/invite-service/internal/domain"
)

var phonePattern = regexp.MustCompile(`^[0-9]{11}$`)

// gsmBasic is the GSM 03.38 default alphabet, gsmExtension the characters
// reachable through the escape table. Together they are the full repertoire
// a single-encoding SMS can carry.
const (
	gsmBasic = "@£$¥èéùìòÇ\nØø\rÅåΔ_ΦΓΛΩΠΨΣΘΞÆæßÉ !\"#¤%&'()*+,-./0123456789:;<=>?" +
		"¡ABCDEFGHIJKLMNOPQRSTUVWXYZÄÖÑÜ§¿abcdefghijklmnopqrstuvwxyzäöñüà"
	gsmExtension = "\f^{}\\[~]|€"
)

var gsmRepertoire = buildRepertoire()

func buildRepertoire() map[rune]struct{} {
	set := make(map[rune]struct{}, len(gsmBasic)+len(gsmExtension))
	for _, r := range gsmBasic {
		set[r] = struct{}{}
	}
	for _, r := range gsmExtension {
		set[r] = struct{}{}
	}
	return set
}

// ValidatePhones checks that phones is a non-empty list of unique 11-digit
// numbers in national format without separators.
func ValidatePhones(phones []string) error {
	if len(phones) == 0 {
		return domain.NewValidationError("phones list must not be empty")
	}

	seen := make(map[string]struct{}, len(phones))
	for _, phone := range phones {
		if !phonePattern.MatchString(phone) {
			return domain.NewValidationError("phone %q is not an 11-digit number", phone)
		}
		if _, ok := seen[phone]; ok {
			return domain.NewValidationError("phone %q appears more than once", phone)
		}
		seen[phone] = struct{}{}
	}

	return nil
}

// ValidateMessage checks that message is 1 to 160 characters long and uses
// only the GSM 7-bit repertoire, so it fits a single non-Unicode SMS.
func ValidateMessage(message string) error {
	if message == "" {
		return domain.NewValidationError("message must not be empty")
	}
	if n := utf8.RuneCountInString(message); n > domain.MaxMessageLength {
		return domain.NewValidationError("message is %d characters long, maximum is %d",
			n, domain.MaxMessageLength)
	}

	for _, r := range message {
		if _, ok := gsmRepertoire[r]; !ok {
			return domain.NewValidationError("message contains character %q outside the GSM alphabet", r)
		}
	}

	return nil
}
