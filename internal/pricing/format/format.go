// Package format renders pricing figures for display.
//
// Values are converted through their shortest decimal representation and
// rounded half away from zero, so 76.986 renders as 76.99 and 1.005 as 1.01.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/landedcost/internal/pricing"
)

// Amount renders a currency value with two decimal places.
func Amount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// USD renders an amount in US dollars, e.g. "$120.00".
func USD(v float64) string {
	return "$" + Amount(v)
}

// Local renders an amount in the local currency, e.g. "BBD $240.00".
func Local(currency string, v float64) string {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		return "$" + Amount(v)
	}
	return currency + " $" + Amount(v)
}

// Margin renders a margin percentage with one decimal place.
func Margin(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1) + "%"
}

// Percent renders a rate field as entered, without padding.
func Percent(v float64) string {
	return decimal.NewFromFloat(v).String() + "%"
}

// ExchangeRate renders the rate with two decimal places.
func ExchangeRate(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Display is the formatted view of one priced product.
type Display struct {
	Cost         string `json:"cost"`
	Shipping     string `json:"shipping"`
	Declared     string `json:"declared"`
	ExchangeRate string `json:"rate"`
	DutyRate     string `json:"duty"`
	VATRate      string `json:"vat"`
	Markup       string `json:"markup"`
	CarrierFee   string `json:"carrier"`
	HandlingFee  string `json:"handling"`
	CIFUSD       string `json:"cif_usd"`
	CIFLocal     string `json:"cif_local"`
	DutyAmount   string `json:"duty_amount"`
	VATOnCustoms string `json:"vat_on_customs"`
	LandedCost   string `json:"landed_cost"`
	SellingPrice string `json:"selling_price"`
	VATApply     string `json:"vat_apply"`
	VATOnSelling string `json:"vat_on_selling"`
	FinalPrice   string `json:"final_price"`
	Profit       string `json:"profit"`
	Margin       string `json:"margin"`
	TotalFinal   string `json:"total_final"`
}

// Render formats inputs and their result using the local currency label.
func Render(currency string, in pricing.CostInputs, r pricing.Result) Display {
	return Display{
		Cost:         USD(in.Cost),
		Shipping:     USD(in.Shipping),
		Declared:     USD(in.Declared),
		ExchangeRate: ExchangeRate(in.ExchangeRate),
		DutyRate:     Percent(in.DutyRatePercent),
		VATRate:      Percent(in.VATRatePercent),
		Markup:       Percent(in.MarkupPercent),
		CarrierFee:   Local(currency, in.CarrierFee),
		HandlingFee:  Local(currency, in.HandlingFee),
		CIFUSD:       USD(r.CIFUSD),
		CIFLocal:     Local(currency, r.CIFLocal),
		DutyAmount:   Local(currency, r.DutyAmount),
		VATOnCustoms: Local(currency, r.VATOnCustoms),
		LandedCost:   Local(currency, r.LandedCost),
		SellingPrice: Local(currency, r.SellingPrice),
		VATApply:     pricing.VATApplyLabel(r.VATApplies),
		VATOnSelling: Local(currency, r.VATOnSelling),
		FinalPrice:   Local(currency, r.FinalPrice),
		Profit:       Local(currency, r.Profit),
		Margin:       Margin(r.MarginPercent),
		TotalFinal:   Local(currency, r.TotalFinal),
	}
}
