// Package validation holds the pure field checks used by the services.
// Every check returns a *domain.InvalidDataError naming the field and never mutates its input.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"eventticketing/internal/domain"
)

const (
	minNameLen        = 2
	maxNameLen        = 100
	maxEmailLen       = 100
	minPhoneDigits    = 7
	maxPhoneDigits    = 15
	minLocationLen    = 5
	maxLocationLen    = 200
	minDescriptionLen = 5
	maxDescriptionLen = 1000
	MinCapacity       = 1
	MaxCapacity       = 10000
	maxExperience     = 50
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func invalid(field, format string, args ...any) error {
	return &domain.InvalidDataError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Name checks a person or event name: 2-100 characters of letters (including
// diacritics), spaces, hyphens and apostrophes.
func Name(field, name string) error {
	n := norm.NFC.String(strings.TrimSpace(name))
	if n == "" {
		return invalid(field, "must not be empty")
	}
	length := utf8.RuneCountInString(n)
	if length < minNameLen || length > maxNameLen {
		return invalid(field, "must be between %d and %d characters", minNameLen, maxNameLen)
	}
	for _, r := range n {
		switch {
		case unicode.IsLetter(r), unicode.Is(unicode.Mn, r):
		case r == ' ', r == '-', r == '\'':
		default:
			return invalid(field, "may only contain letters, spaces, hyphens and apostrophes")
		}
	}
	return nil
}

// Email checks an email address.
func Email(field, email string) error {
	e := strings.TrimSpace(email)
	if e == "" {
		return invalid(field, "must not be empty")
	}
	if len(e) > maxEmailLen {
		return invalid(field, "must be at most %d characters", maxEmailLen)
	}
	if !emailRegexp.MatchString(e) {
		return invalid(field, "is not a valid email address")
	}
	return nil
}

// NormalizeEmail returns the canonical form used for uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Phone checks a phone number: after removing spaces, hyphens, parentheses and
// one leading '+', 7-15 digits must remain.
func Phone(field, phone string) error {
	p := strings.TrimSpace(phone)
	if p == "" {
		return invalid(field, "must not be empty")
	}
	p = strings.TrimPrefix(p, "+")
	p = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(p)
	for _, r := range p {
		if r < '0' || r > '9' {
			return invalid(field, "may only contain digits")
		}
	}
	if len(p) < minPhoneDigits || len(p) > maxPhoneDigits {
		return invalid(field, "must have between %d and %d digits", minPhoneDigits, maxPhoneDigits)
	}
	return nil
}

// EventDates checks that start is not before now, end is after start and the
// event lasts at most domain.MaxEventDuration.
func EventDates(start, end, now time.Time) error {
	if start.IsZero() {
		return invalid("start", "is required")
	}
	if end.IsZero() {
		return invalid("end", "is required")
	}
	if start.Before(now) {
		return invalid("start", "must not be in the past")
	}
	if !end.After(start) {
		return invalid("end", "must be after start")
	}
	if end.Sub(start) > domain.MaxEventDuration {
		return invalid("end", "event may last at most 30 days")
	}
	return nil
}

// Location checks a venue description: 5-200 characters after trimming.
func Location(field, location string) error {
	return textLength(field, location, minLocationLen, maxLocationLen)
}

// Description checks a free-text description: 5-1000 characters after trimming.
func Description(field, description string) error {
	return textLength(field, description, minDescriptionLen, maxDescriptionLen)
}

func textLength(field, s string, minLen, maxLen int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	if n == 0 {
		return invalid(field, "must not be empty")
	}
	if n < minLen || n > maxLen {
		return invalid(field, "must be between %d and %d characters", minLen, maxLen)
	}
	return nil
}

// Capacity checks an event capacity.
func Capacity(field string, capacity int) error {
	if capacity < MinCapacity || capacity > MaxCapacity {
		return invalid(field, "must be between %d and %d", MinCapacity, MaxCapacity)
	}
	return nil
}

// ExperienceYears checks an organizer's years of experience.
func ExperienceYears(field string, years int) error {
	if years < 0 || years > maxExperience {
		return invalid(field, "must be between 0 and %d", maxExperience)
	}
	return nil
}

// ID checks that an identifier is present.
func ID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid(field, "must not be empty")
	}
	return nil
}

// First returns the first non-nil error, so a chain of checks reads top to bottom.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
