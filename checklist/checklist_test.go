package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateShape(t *testing.T) {
	require.Len(t, Template, 3)
	assert.Len(t, Template["before"], 3)
	assert.Len(t, Template["during"], 3)
	assert.Len(t, Template["after"], 5)
}

func TestValidateSubmission(t *testing.T) {
	good := submission{
		Name:  "Sarah O'Brien",
		Email: "sarah@example.com",
		Date:  "2026-04-01",
	}
	assert.Nil(t, validateSubmission(good))

	bad := submission{Name: " S ", Email: "nope", Date: "April 1st"}
	errs := validateSubmission(bad)
	require.NotNil(t, errs)
	assert.Equal(t, "Name is required", errs["name"])
	assert.Equal(t, "Valid email required", errs["email"])
	assert.Equal(t, "Date is required", errs["date"])

	missing := submission{Name: "Sarah", Email: "sarah@example.com"}
	errs = validateSubmission(missing)
	assert.Equal(t, "Date is required", errs["date"])

	// Whitespace-only fields are trimmed before validation.
	blank := submission{Name: "   ", Email: "  ", Date: "2026-04-01"}
	errs = validateSubmission(blank)
	assert.Equal(t, "Name is required", errs["name"])
	assert.Equal(t, "Valid email required", errs["email"])
}

func TestNormalizeResponsesFiltersUnknownKeys(t *testing.T) {
	in := map[string]map[string]bool{
		"before": {
			"arrived_on_time": true,
			"made_up_item":    true,
		},
		"made_up_category": {
			"whatever": true,
		},
	}

	out := NormalizeResponses(in)

	require.Len(t, out, 3)
	assert.NotContains(t, out, "made_up_category")
	assert.NotContains(t, out["before"], "made_up_item")
	assert.True(t, out["before"]["arrived_on_time"])
}

func TestNormalizeResponsesDefaultsUnticked(t *testing.T) {
	out := NormalizeResponses(nil)

	require.Len(t, out, 3)
	for category, items := range Template {
		require.Len(t, out[category], len(items))
		for _, item := range items {
			assert.False(t, out[category][item.ID])
		}
	}
}
