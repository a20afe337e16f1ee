package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenbiz25/manifestdublin/models"
)

func TestCalculateHourly(t *testing.T) {
	rule := models.DefaultPricingRule()

	q, err := Calculate("09:00", "12:00", false, 1, rule)
	require.NoError(t, err)

	assert.Equal(t, 3.0, q.Hours)
	assert.False(t, q.IsFullDay)
	assert.Equal(t, 75.0, q.BaseRate)
	assert.Equal(t, 75.0, q.Subtotal)
	assert.Equal(t, 0.0, q.DiscountAmount)
	assert.Equal(t, 75.0, q.Total)
	assert.Equal(t, 37.5, q.Deposit)
	assert.Equal(t, 37.5, q.Balance)
}

func TestCalculateFullDayByDuration(t *testing.T) {
	rule := models.DefaultPricingRule()

	// 8 hours trips the full-day rate even without the flag.
	q, err := Calculate("09:00", "17:00", false, 1, rule)
	require.NoError(t, err)

	assert.True(t, q.IsFullDay)
	assert.Equal(t, 180.0, q.BaseRate)
	assert.Equal(t, 180.0, q.Total)
	assert.Equal(t, 90.0, q.Deposit)
}

func TestCalculateFullDayFlag(t *testing.T) {
	rule := models.DefaultPricingRule()

	q, err := Calculate("09:00", "11:00", true, 1, rule)
	require.NoError(t, err)

	assert.True(t, q.IsFullDay)
	assert.Equal(t, 180.0, q.BaseRate)
}

func TestCalculateDiscountThreshold(t *testing.T) {
	rule := models.DefaultPricingRule()

	cases := []struct {
		repeat   int
		discount float64
	}{
		{1, 0},
		{2, 0},
		{3, 7.5},  // 1 discounted booking: 75 * 10%
		{4, 15},   // 2 discounted bookings
		{5, 22.5}, // 3 discounted bookings
	}
	for _, c := range cases {
		q, err := Calculate("09:00", "12:00", false, c.repeat, rule)
		require.NoError(t, err)
		assert.Equal(t, c.discount, q.DiscountAmount, "repeat=%d", c.repeat)
		assert.Equal(t, q.Subtotal-c.discount, q.Total, "repeat=%d", c.repeat)
	}
}

func TestCalculateDiscountUsesChargedRate(t *testing.T) {
	rule := models.DefaultPricingRule()

	// Full-day repeat bookings discount against the full-day rate.
	q, err := Calculate("09:00", "17:00", false, 3, rule)
	require.NoError(t, err)

	assert.Equal(t, 540.0, q.Subtotal)
	assert.Equal(t, 18.0, q.DiscountAmount)
	assert.Equal(t, 522.0, q.Total)
}

func TestCalculateRepeatClamped(t *testing.T) {
	rule := models.DefaultPricingRule()

	q, err := Calculate("09:00", "10:00", false, 0, rule)
	require.NoError(t, err)
	assert.Equal(t, 1, q.RepeatCount)

	q, err = Calculate("09:00", "10:00", false, 99, rule)
	require.NoError(t, err)
	assert.Equal(t, 10, q.RepeatCount)
}

func TestCalculateTotalNeverNegative(t *testing.T) {
	rule := models.PricingRule{
		HourlyRateEur:     10,
		FullDayRateEur:    50,
		FullDayHours:      8,
		DepositPercent:    50,
		DiscountThreshold: 1,
		DiscountPercent:   200,
	}

	q, err := Calculate("09:00", "10:00", false, 1, rule)
	require.NoError(t, err)

	assert.Equal(t, 0.0, q.Total)
	assert.Equal(t, 0.0, q.Deposit)
	assert.Equal(t, 0.0, q.Balance)
}

func TestCalculateInvalidRange(t *testing.T) {
	rule := models.DefaultPricingRule()

	for _, c := range []struct{ start, end string }{
		{"12:00", "12:00"},
		{"14:00", "12:00"},
		{"", "12:00"},
		{"9am", "12:00"},
		{"09:00", "25:00"},
	} {
		_, err := Calculate(c.start, c.end, false, 1, rule)
		assert.ErrorIs(t, err, ErrInvalidTimeRange, "%s-%s", c.start, c.end)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	rule := models.DefaultPricingRule()

	a, err := Calculate("10:30", "15:00", false, 4, rule)
	require.NoError(t, err)
	b, err := Calculate("10:30", "15:00", false, 4, rule)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestCalculateHalfHour(t *testing.T) {
	rule := models.DefaultPricingRule()

	q, err := Calculate("09:00", "10:30", false, 1, rule)
	require.NoError(t, err)

	assert.Equal(t, 1.5, q.Hours)
	assert.Equal(t, 37.5, q.BaseRate)
}
