// Package revenue derives the monthly take-home figures shown in the feed's
// revenue snapshot card.
package revenue

import (
	"math"
	"strconv"
	"strings"
)

const (
	// WeeksPerYear is used for both revenue and standard rent.
	WeeksPerYear = 52
	// DefaultFreeWeeks is the move-in special: rent is charged for 44 weeks.
	DefaultFreeWeeks = 8

	DefaultWeeklyRent    = 295
	DefaultWeeklyRevenue = 2500

	// MaxWeeklyAmount caps each input so every derived figure stays exact
	// and well inside int64.
	MaxWeeklyAmount = 1e9
)

// Inputs are the two editable amounts. Sanitize before deriving.
type Inputs struct {
	WeeklyRent    float64 `json:"weekly_rent"`
	WeeklyRevenue float64 `json:"weekly_revenue"`
}

// DefaultInputs are the values the card starts with.
func DefaultInputs() Inputs {
	return Inputs{WeeklyRent: DefaultWeeklyRent, WeeklyRevenue: DefaultWeeklyRevenue}
}

// Sanitize maps negative, NaN and infinite amounts to 0 and caps the rest
// at MaxWeeklyAmount.
func (in Inputs) Sanitize() Inputs {
	return Inputs{WeeklyRent: SanitizeAmount(in.WeeklyRent), WeeklyRevenue: SanitizeAmount(in.WeeklyRevenue)}
}

// SanitizeAmount maps negative, NaN and infinite amounts to 0 and caps the
// rest at MaxWeeklyAmount.
func SanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Min(v, MaxWeeklyAmount)
}

// ParseAmount reads a form field. Empty or non-numeric text is 0, like an
// empty number input.
func ParseAmount(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return SanitizeAmount(v)
}

// Round rounds half up, so 9751.5 becomes 9752 and -0.5 becomes 0. Values
// outside the int64 range saturate and NaN is 0.
func Round(x float64) int64 {
	r := math.Floor(x + 0.5)
	switch {
	case math.IsNaN(r):
		return 0
	case r >= math.MaxInt64:
		return math.MaxInt64
	case r <= math.MinInt64:
		return math.MinInt64
	}
	return int64(r)
}

// Result is the derived view of one set of inputs.
type Result struct {
	MonthlyStandard int64 `json:"monthly_standard"`
	MonthlyPromo    int64 `json:"monthly_promo"`
	MonthlyDelta    int64 `json:"monthly_delta"`
	AnnualDelta     int64 `json:"annual_delta"`
}

// Calculator holds the promo terms. The zero value uses the 8-week special.
type Calculator struct {
	freeWeeks  int
	configured bool
}

// NewCalculator returns a calculator; freeWeeks outside [0, 52) falls back to 8.
func NewCalculator(freeWeeks int) Calculator {
	if freeWeeks < 0 || freeWeeks >= WeeksPerYear {
		freeWeeks = DefaultFreeWeeks
	}
	return Calculator{freeWeeks: freeWeeks, configured: true}
}

// FreeWeeks is the number of rent-free weeks in the promo.
func (c Calculator) FreeWeeks() int {
	if !c.configured {
		return DefaultFreeWeeks
	}
	return c.freeWeeks
}

// PromoRentWeeks is the number of weeks charged in promo year one.
func (c Calculator) PromoRentWeeks() int {
	return WeeksPerYear - c.FreeWeeks()
}

// Compute derives both monthly figures and the promo advantage.
func (c Calculator) Compute(in Inputs) Result {
	in = in.Sanitize()
	annualRevenue := in.WeeklyRevenue * WeeksPerYear
	annualRentStandard := in.WeeklyRent * WeeksPerYear
	annualRentPromo := in.WeeklyRent * float64(c.PromoRentWeeks())

	r := Result{
		MonthlyStandard: Round((annualRevenue - annualRentStandard) / 12),
		MonthlyPromo:    Round((annualRevenue - annualRentPromo) / 12),
	}
	r.MonthlyDelta = r.MonthlyPromo - r.MonthlyStandard
	r.AnnualDelta = r.MonthlyDelta * 12
	return r
}

// Estimated is the headline figure for the current promo toggle.
func (r Result) Estimated(promo bool) int64 {
	if promo {
		return r.MonthlyPromo
	}
	return r.MonthlyStandard
}
