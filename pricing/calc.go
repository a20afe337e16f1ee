package pricing

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/kenbiz25/manifestdublin/models"
)

// Quote is a derived price breakdown. All amounts are euro.
type Quote struct {
	Hours          float64 `json:"hours"` // rounded to 1 decimal for display
	IsFullDay      bool    `json:"is_full_day"`
	BaseRate       float64 `json:"base_rate"`
	RepeatCount    int     `json:"repeat_count"`
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`
	Deposit        float64 `json:"deposit"`
	Balance        float64 `json:"balance"`
}

var ErrInvalidTimeRange = errors.New("select valid times")

// Calculate derives a quote from a time range, full-day flag, repeat
// count and the active pricing rule. Pure: identical inputs always
// yield identical output.
func Calculate(startTime, endTime string, isFullDay bool, repeatCount int, rule models.PricingRule) (Quote, error) {
	startH, startM, err := parseClock(startTime)
	if err != nil {
		return Quote{}, ErrInvalidTimeRange
	}
	endH, endM, err := parseClock(endTime)
	if err != nil {
		return Quote{}, ErrInvalidTimeRange
	}

	hours := (float64(endH) + float64(endM)/60) - (float64(startH) + float64(startM)/60)
	if hours <= 0 {
		return Quote{}, ErrInvalidTimeRange
	}

	if repeatCount < 1 {
		repeatCount = 1
	} else if repeatCount > 10 {
		repeatCount = 10
	}

	useFullDay := isFullDay || hours >= rule.FullDayHours
	baseRate := hours * rule.HourlyRateEur
	if useFullDay {
		baseRate = rule.FullDayRateEur
	}

	subtotal := baseRate * float64(repeatCount)

	// Multi-booking discount: everything at or past the threshold is
	// discounted, computed against the rate actually charged.
	var discountAmount float64
	if repeatCount >= rule.DiscountThreshold {
		discountedBookings := repeatCount - rule.DiscountThreshold + 1
		discountAmount = baseRate * float64(discountedBookings) * rule.DiscountPercent / 100
	}

	total := subtotal - discountAmount
	if total < 0 {
		total = 0
	}

	deposit := total * rule.DepositPercent / 100
	balance := total - deposit

	return Quote{
		Hours:          math.Round(hours*10) / 10,
		IsFullDay:      useFullDay,
		BaseRate:       baseRate,
		RepeatCount:    repeatCount,
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          total,
		Deposit:        deposit,
		Balance:        balance,
	}, nil
}

func parseClock(t string) (int, int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidTimeRange
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, ErrInvalidTimeRange
	}
	return h, m, nil
}
