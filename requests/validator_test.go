package requests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func validDraft() Draft {
	return Draft{
		Name:          "Sarah O'Brien",
		Email:         "sarah@example.com",
		Phone:         "+353 87 123 4567",
		RequestedDate: "2026-04-01",
		StartTime:     "09:00",
		EndTime:       "12:00",
		Purpose:       "Community workshop",
		AgreedToTerms: true,
		GDPRConsent:   true,
	}
}

func TestValidateAccepts(t *testing.T) {
	d, errs := Validate(validDraft(), nil, testNow)
	require.Nil(t, errs)
	assert.Equal(t, "sarah@example.com", d.Email)
}

func TestValidateNormalizes(t *testing.T) {
	draft := validDraft()
	draft.Name = "  Sarah O'Brien  "
	draft.Email = " SARAH@Example.COM "
	draft.Phone = " +353 87 123 4567 "

	d, errs := Validate(draft, nil, testNow)
	require.Nil(t, errs)
	assert.Equal(t, "Sarah O'Brien", d.Name)
	assert.Equal(t, "sarah@example.com", d.Email)
	assert.Equal(t, "+353 87 123 4567", d.Phone)
}

func TestValidateName(t *testing.T) {
	draft := validDraft()
	draft.Name = "S"
	_, errs := Validate(draft, nil, testNow)
	assert.Equal(t, "Name must be at least 2 characters", errs["name"])

	draft.Name = "   "
	_, errs = Validate(draft, nil, testNow)
	assert.Contains(t, errs, "name")
}

func TestValidateEmail(t *testing.T) {
	draft := validDraft()
	draft.Email = "not-an-email"
	_, errs := Validate(draft, nil, testNow)
	assert.Equal(t, "Please enter a valid email address", errs["email"])
}

func TestValidatePhoneShape(t *testing.T) {
	draft := validDraft()
	draft.Phone = "call me maybe"
	_, errs := Validate(draft, nil, testNow)
	assert.Equal(t, "Please enter a valid phone number", errs["phone"])

	// Phone is optional.
	draft.Phone = ""
	_, errs = Validate(draft, nil, testNow)
	assert.Nil(t, errs)
}

func TestValidateDateRules(t *testing.T) {
	draft := validDraft()
	draft.RequestedDate = "not-a-date"
	_, errs := Validate(draft, nil, testNow)
	assert.Equal(t, "Please select a valid date", errs["requested_date"])

	draft.RequestedDate = "2026-03-09"
	_, errs = Validate(draft, nil, testNow)
	assert.Equal(t, "Date cannot be in the past", errs["requested_date"])

	// The submission day itself is allowed.
	draft.RequestedDate = "2026-03-10"
	_, errs = Validate(draft, nil, testNow)
	assert.Nil(t, errs)
}

func TestValidateBookedDate(t *testing.T) {
	draft := validDraft()
	booked := map[string]bool{"2026-04-01": true}
	_, errs := Validate(draft, booked, testNow)
	assert.Equal(t, "This date is already booked", errs["requested_date"])
}

func TestValidateTimeOrdering(t *testing.T) {
	draft := validDraft()
	draft.StartTime = "12:00"
	draft.EndTime = "09:00"
	_, errs := Validate(draft, nil, testNow)
	assert.Equal(t, "End time must be after start time", errs["end_time"])

	draft.StartTime = "12:00"
	draft.EndTime = "12:00"
	_, errs = Validate(draft, nil, testNow)
	assert.Equal(t, "End time must be after start time", errs["end_time"])
}

func TestValidateTimeSlotMembership(t *testing.T) {
	draft := validDraft()
	draft.StartTime = "06:30"
	_, errs := Validate(draft, nil, testNow)
	assert.Equal(t, "Please select a start time", errs["start_time"])

	draft = validDraft()
	draft.EndTime = "21:00"
	_, errs = Validate(draft, nil, testNow)
	assert.Equal(t, "Please select an end time", errs["end_time"])
}

func TestValidateConsentFlags(t *testing.T) {
	draft := validDraft()
	draft.AgreedToTerms = false
	_, errs := Validate(draft, nil, testNow)
	assert.Equal(t, "You must agree to the terms and conditions", errs["agreed_to_terms"])

	draft = validDraft()
	draft.GDPRConsent = false
	_, errs = Validate(draft, nil, testNow)
	assert.Equal(t, "You must consent to data processing", errs["gdpr_consent"])
}

func TestValidateCollectsAllViolations(t *testing.T) {
	_, errs := Validate(Draft{}, nil, testNow)
	require.NotNil(t, errs)
	for _, field := range []string{"name", "email", "requested_date", "start_time", "end_time", "agreed_to_terms", "gdpr_consent"} {
		assert.Contains(t, errs, field)
	}
	// Phone and purpose are optional and empty, so no error for them.
	assert.NotContains(t, errs, "phone")
	assert.NotContains(t, errs, "purpose")
}

func TestTimeSlotsGrid(t *testing.T) {
	require.Len(t, TimeSlots, 28)
	assert.Equal(t, "07:00", TimeSlots[0])
	assert.Equal(t, "07:30", TimeSlots[1])
	assert.Equal(t, "20:30", TimeSlots[27])
}
