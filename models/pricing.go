package models

import "time"

// PricingRule is the mutable pricing configuration. Exactly one rule is
// active at a time: is_active == true with the most recent effective_from.
type PricingRule struct {
	RuleID            string    `json:"ruleid,omitempty" bson:"ruleid,omitempty"`
	HourlyRateEur     float64   `json:"hourly_rate_eur" bson:"hourly_rate_eur"`
	FullDayRateEur    float64   `json:"full_day_rate_eur" bson:"full_day_rate_eur"`
	FullDayHours      float64   `json:"full_day_hours" bson:"full_day_hours"`
	DepositPercent    float64   `json:"deposit_percent" bson:"deposit_percent"`
	DiscountThreshold int       `json:"discount_threshold" bson:"discount_threshold"`
	DiscountPercent   float64   `json:"discount_percent" bson:"discount_percent"`
	IsActive          bool      `json:"is_active" bson:"is_active"`
	EffectiveFrom     time.Time `json:"effective_from" bson:"effective_from"`
}

// DefaultPricingRule mirrors the published rates used when no rule
// document exists yet.
func DefaultPricingRule() PricingRule {
	return PricingRule{
		HourlyRateEur:     25,
		FullDayRateEur:    180,
		FullDayHours:      8,
		DepositPercent:    50,
		DiscountThreshold: 3,
		DiscountPercent:   10,
		IsActive:          true,
	}
}
