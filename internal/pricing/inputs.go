package pricing

import (
	"math"
	"strconv"
	"strings"
)

// Defaults applied when an optional field is absent.
const (
	DefaultShipping       = 0.0
	DefaultVATRatePercent = 17.5
	DefaultMarkupPercent  = 30.0
	DefaultCarrierFee     = 0.0
	DefaultHandlingFee    = 0.0
	DefaultDutyRate       = 0.0
	DefaultQuantity       = 1
)

// Fields are raw cost inputs as received from a form or a stored record.
// A nil pointer means the value was not supplied.
type Fields struct {
	Cost            *float64
	Shipping        *float64
	Declared        *float64
	ExchangeRate    *float64
	DutyRatePercent *float64
	VATRatePercent  *float64
	MarkupPercent   *float64
	CarrierFee      *float64
	HandlingFee     *float64
	Quantity        *int
}

// Build validates the required fields and fills every optional one with its
// default. It is the only way CostInputs should be produced.
func (f Fields) Build() (CostInputs, error) {
	cost := finite(f.Cost)
	if cost == nil || *cost <= 0 {
		return CostInputs{}, ErrInvalidCost
	}
	rate := finite(f.ExchangeRate)
	if rate == nil || *rate <= 0 {
		return CostInputs{}, ErrInvalidExchangeRate
	}

	shipping, err := nonNegative(f.Shipping, DefaultShipping, ErrInvalidShipping)
	if err != nil {
		return CostInputs{}, err
	}

	// Declared falls back to cost+shipping when missing or zero.
	declared := *cost + shipping
	if d := finite(f.Declared); d != nil {
		if *d < 0 {
			return CostInputs{}, ErrInvalidDeclared
		}
		if *d > 0 {
			declared = *d
		}
	}

	duty, err := nonNegative(f.DutyRatePercent, DefaultDutyRate, ErrInvalidDutyRate)
	if err != nil {
		return CostInputs{}, err
	}
	vat, err := nonNegative(f.VATRatePercent, DefaultVATRatePercent, ErrInvalidVATRate)
	if err != nil {
		return CostInputs{}, err
	}
	markup, err := nonNegative(f.MarkupPercent, DefaultMarkupPercent, ErrInvalidMarkup)
	if err != nil {
		return CostInputs{}, err
	}
	carrier, err := nonNegative(f.CarrierFee, DefaultCarrierFee, ErrInvalidCarrierFee)
	if err != nil {
		return CostInputs{}, err
	}
	handling, err := nonNegative(f.HandlingFee, DefaultHandlingFee, ErrInvalidHandlingFee)
	if err != nil {
		return CostInputs{}, err
	}

	quantity := DefaultQuantity
	if f.Quantity != nil {
		switch {
		case *f.Quantity < 0:
			return CostInputs{}, ErrInvalidQuantity
		case *f.Quantity > 0:
			quantity = *f.Quantity
		}
	}

	return CostInputs{
		Cost:            *cost,
		Shipping:        shipping,
		Declared:        declared,
		ExchangeRate:    *rate,
		DutyRatePercent: duty,
		VATRatePercent:  vat,
		MarkupPercent:   markup,
		CarrierFee:      carrier,
		HandlingFee:     handling,
		Quantity:        quantity,
	}, nil
}

// ParseNumber converts a raw form value. Empty, non-numeric, NaN and infinite
// values come back as nil so Build applies the default.
func ParseNumber(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ParseInt converts a raw quantity value the same way ParseNumber does.
func ParseInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func finite(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}

func nonNegative(v *float64, def float64, invalid error) (float64, error) {
	v = finite(v)
	if v == nil {
		return def, nil
	}
	if *v < 0 {
		return 0, invalid
	}
	return *v, nil
}
