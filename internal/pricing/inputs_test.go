package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestBuildAppliesDefaults(t *testing.T) {
	in, err := Fields{
		Cost:         ptr(100.0),
		Shipping:     ptr(20.0),
		ExchangeRate: ptr(2.0),
	}.Build()
	require.NoError(t, err)

	assert.Equal(t, CostInputs{
		Cost:            100,
		Shipping:        20,
		Declared:        120,
		ExchangeRate:    2,
		DutyRatePercent: 0,
		VATRatePercent:  17.5,
		MarkupPercent:   30,
		CarrierFee:      0,
		HandlingFee:     0,
		Quantity:        1,
	}, in)
}

func TestBuildKeepsExplicitZeroRates(t *testing.T) {
	in, err := Fields{
		Cost:           ptr(50.0),
		ExchangeRate:   ptr(2.0),
		VATRatePercent: ptr(0.0),
		MarkupPercent:  ptr(0.0),
	}.Build()
	require.NoError(t, err)

	assert.Zero(t, in.VATRatePercent)
	assert.Zero(t, in.MarkupPercent)
}

func TestBuildDeclaredFallback(t *testing.T) {
	cases := []struct {
		name     string
		declared *float64
		want     float64
	}{
		{name: "absent", declared: nil, want: 15},
		{name: "zero", declared: ptr(0.0), want: 15},
		{name: "nan", declared: ptr(math.NaN()), want: 15},
		{name: "explicit", declared: ptr(42.0), want: 42},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, err := Fields{
				Cost:         ptr(10.0),
				Shipping:     ptr(5.0),
				Declared:     tc.declared,
				ExchangeRate: ptr(2.0),
			}.Build()
			require.NoError(t, err)
			assert.Equal(t, tc.want, in.Declared)
		})
	}
}

func TestBuildQuantity(t *testing.T) {
	base := Fields{Cost: ptr(10.0), ExchangeRate: ptr(2.0)}

	base.Quantity = ptr(0)
	in, err := base.Build()
	require.NoError(t, err)
	assert.Equal(t, 1, in.Quantity)

	base.Quantity = ptr(12)
	in, err = base.Build()
	require.NoError(t, err)
	assert.Equal(t, 12, in.Quantity)

	base.Quantity = ptr(-1)
	_, err = base.Build()
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestBuildValidation(t *testing.T) {
	valid := func() Fields {
		return Fields{Cost: ptr(10.0), ExchangeRate: ptr(2.0)}
	}

	cases := []struct {
		name   string
		mutate func(f *Fields)
		want   error
	}{
		{name: "missing cost", mutate: func(f *Fields) { f.Cost = nil }, want: ErrInvalidCost},
		{name: "zero cost", mutate: func(f *Fields) { f.Cost = ptr(0.0) }, want: ErrInvalidCost},
		{name: "infinite cost", mutate: func(f *Fields) { f.Cost = ptr(math.Inf(1)) }, want: ErrInvalidCost},
		{name: "missing rate", mutate: func(f *Fields) { f.ExchangeRate = nil }, want: ErrInvalidExchangeRate},
		{name: "negative rate", mutate: func(f *Fields) { f.ExchangeRate = ptr(-2.0) }, want: ErrInvalidExchangeRate},
		{name: "negative shipping", mutate: func(f *Fields) { f.Shipping = ptr(-1.0) }, want: ErrInvalidShipping},
		{name: "negative declared", mutate: func(f *Fields) { f.Declared = ptr(-1.0) }, want: ErrInvalidDeclared},
		{name: "negative duty", mutate: func(f *Fields) { f.DutyRatePercent = ptr(-1.0) }, want: ErrInvalidDutyRate},
		{name: "negative vat", mutate: func(f *Fields) { f.VATRatePercent = ptr(-1.0) }, want: ErrInvalidVATRate},
		{name: "negative markup", mutate: func(f *Fields) { f.MarkupPercent = ptr(-1.0) }, want: ErrInvalidMarkup},
		{name: "negative carrier", mutate: func(f *Fields) { f.CarrierFee = ptr(-1.0) }, want: ErrInvalidCarrierFee},
		{name: "negative handling", mutate: func(f *Fields) { f.HandlingFee = ptr(-1.0) }, want: ErrInvalidHandlingFee},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := valid()
			tc.mutate(&f)
			_, err := f.Build()
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestParseNumber(t *testing.T) {
	assert.Nil(t, ParseNumber(""))
	assert.Nil(t, ParseNumber("  "))
	assert.Nil(t, ParseNumber("abc"))
	assert.Nil(t, ParseNumber("NaN"))
	assert.Nil(t, ParseNumber("Inf"))

	v := ParseNumber(" 17.5 ")
	require.NotNil(t, v)
	assert.Equal(t, 17.5, *v)

	assert.Nil(t, ParseInt("1.5"))
	q := ParseInt("3")
	require.NotNil(t, q)
	assert.Equal(t, 3, *q)
}

func TestBuildThenComputeMatchesScenario(t *testing.T) {
	in, err := Fields{
		Cost:            ParseNumber("100"),
		Shipping:        ParseNumber("20"),
		Declared:        ParseNumber(""),
		ExchangeRate:    ParseNumber("2.00"),
		DutyRatePercent: ParseNumber("20"),
		VATRatePercent:  ParseNumber("17.5"),
		MarkupPercent:   ParseNumber("30"),
		CarrierFee:      ParseNumber(""),
		HandlingFee:     ParseNumber(""),
		Quantity:        ParseInt("1"),
	}.Build()
	require.NoError(t, err)

	r := Compute(in)
	assert.InDelta(t, 338.4, r.LandedCost, tolerance)
	assert.InDelta(t, 516.906, r.FinalPrice, tolerance)
}
