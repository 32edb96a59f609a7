package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventticketing/internal/domain"
)

func requireInvalid(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrInvalidData))
	var ide *domain.InvalidDataError
	require.True(t, errors.As(err, &ide))
	require.Equal(t, field, ide.Field)
	require.NotEmpty(t, ide.Reason)
}

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "Ana Souza", false},
		{"diacritics", "José Conceição", false},
		{"combining accent", "Jose\u0301 Maria", false},
		{"hyphen and apostrophe", "Mary-Jane O'Neil", false},
		{"empty", "   ", true},
		{"too short", "A", true},
		{"too long", strings.Repeat("a", 101), true},
		{"digits", "Agent 007", true},
		{"symbols", "Tech@Conf", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Name("name", tt.input)
			if tt.wantErr {
				requireInvalid(t, err, "name")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEmail(t *testing.T) {
	require.NoError(t, Email("email", "ana@example.com"))
	requireInvalid(t, Email("email", ""), "email")
	requireInvalid(t, Email("email", "ana@example"), "email")
	requireInvalid(t, Email("email", "not an email"), "email")
	requireInvalid(t, Email("email", strings.Repeat("a", 95)+"@x.com"), "email")
	require.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}

func TestPhone(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"+55 (11) 98765-4321", false},
		{"1234567", false},
		{"123456", true},
		{"1234567890123456", true},
		{"12345abc", true},
		{"", true},
		{"++1234567", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := Phone("phone", tt.input)
			if tt.wantErr {
				requireInvalid(t, err, "phone")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEventDates(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, EventDates(now.Add(time.Hour), now.Add(3*time.Hour), now))
	require.NoError(t, EventDates(now.Add(time.Hour), now.Add(time.Hour+domain.MaxEventDuration), now))

	requireInvalid(t, EventDates(now.Add(-time.Minute), now.Add(time.Hour), now), "start")
	requireInvalid(t, EventDates(now.Add(time.Hour), now.Add(time.Hour), now), "end")
	requireInvalid(t, EventDates(now.Add(2*time.Hour), now.Add(time.Hour), now), "end")
	requireInvalid(t, EventDates(now.Add(time.Hour), now.Add(time.Hour+domain.MaxEventDuration+time.Second), now), "end")
	requireInvalid(t, EventDates(time.Time{}, now, now), "start")
}

func TestLengthChecks(t *testing.T) {
	require.NoError(t, Location("location", "  Main Hall  "))
	requireInvalid(t, Location("location", "Hall"), "location")
	requireInvalid(t, Location("location", strings.Repeat("x", 201)), "location")

	require.NoError(t, Description("description", "A day of talks"))
	requireInvalid(t, Description("description", "Talk"), "description")
	requireInvalid(t, Description("description", strings.Repeat("x", 1001)), "description")
}

func TestNumericChecks(t *testing.T) {
	require.NoError(t, Capacity("capacity", 1))
	require.NoError(t, Capacity("capacity", 10000))
	requireInvalid(t, Capacity("capacity", 0), "capacity")
	requireInvalid(t, Capacity("capacity", 10001), "capacity")

	require.NoError(t, ExperienceYears("experience_years", 0))
	require.NoError(t, ExperienceYears("experience_years", 50))
	requireInvalid(t, ExperienceYears("experience_years", -1), "experience_years")
	requireInvalid(t, ExperienceYears("experience_years", 51), "experience_years")

	require.NoError(t, ID("id", "abc"))
	requireInvalid(t, ID("id", " "), "id")
}

func TestFirst(t *testing.T) {
	err := First(nil, Capacity("capacity", 0), ID("id", ""))
	requireInvalid(t, err, "capacity")
	require.NoError(t, First(nil, nil))
}
