// Package pricing turns product cost inputs into landed cost, selling price
// and margin figures.
//
// Compute is pure and total: it performs no I/O, holds no state and never
// fails for inputs produced by Fields.Build. Every call site (live preview,
// save and catalog render) goes through the same chain so the figures shown
// for a product never depend on where they were computed.
package pricing

const (
	// DeMinimisUSD is the customs value at or below which no duty and no
	// VAT-on-customs are charged. Only a value strictly above it is taxed.
	DeMinimisUSD = 30.0

	// SellingVATRate is added to the selling price when the threshold is
	// crossed. It is fixed and unrelated to CostInputs.VATRatePercent.
	SellingVATRate = 0.175
)

// CostInputs is a fully normalized set of inputs. Build it with Fields.Build.
type CostInputs struct {
	Cost            float64 // USD
	Shipping        float64 // USD
	Declared        float64 // USD, already defaulted to Cost+Shipping
	ExchangeRate    float64 // local currency per USD
	DutyRatePercent float64
	VATRatePercent  float64
	MarkupPercent   float64
	CarrierFee      float64 // local currency
	HandlingFee     float64 // local currency
	Quantity        int
}

// Result holds every derived figure. Local amounts are in the exchange
// rate's target currency.
type Result struct {
	CIFUSD        float64 `json:"cif_usd"`
	CIFLocal      float64 `json:"cif_local"`
	DutyAmount    float64 `json:"duty_amount"`
	VATOnCustoms  float64 `json:"vat_on_customs"`
	LandedCost    float64 `json:"landed_cost"`
	SellingPrice  float64 `json:"selling_price"`
	VATApplies    bool    `json:"vat_applies"`
	VATOnSelling  float64 `json:"vat_on_selling"`
	FinalPrice    float64 `json:"final_price"`
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"margin_percent"`
	TotalFinal    float64 `json:"total_final"`
}

// BelowThreshold reports whether a customs value is exempt from duty and VAT.
func BelowThreshold(cifUSD float64) bool {
	return cifUSD <= DeMinimisUSD
}

// Compute evaluates the full formula chain for fresh inputs.
func Compute(in CostInputs) Result {
	return compute(in, !BelowThreshold(in.Declared))
}

// ComputeStored evaluates a saved product, taking the selling-VAT decision
// from the flag stored at its last save instead of re-deriving it. Duty and
// VAT-on-customs still follow the threshold.
func ComputeStored(in CostInputs, storedVATApplies bool) Result {
	return compute(in, storedVATApplies)
}

func compute(in CostInputs, vatApplies bool) Result {
	cifUSD := in.Declared
	cifLocal := cifUSD * in.ExchangeRate
	below := BelowThreshold(cifUSD)

	var duty, vatOnCustoms float64
	if !below {
		duty = cifLocal * (in.DutyRatePercent / 100)
		vatOnCustoms = (cifLocal + duty) * (in.VATRatePercent / 100)
	}

	landed := cifLocal + duty + vatOnCustoms + in.CarrierFee + in.HandlingFee
	selling := landed * (1 + in.MarkupPercent/100)

	var vatOnSelling float64
	if vatApplies {
		vatOnSelling = selling * SellingVATRate
	}

	final := selling + vatOnSelling
	profit := final - landed

	var margin float64
	if landed > 0 {
		margin = profit / landed * 100
	}

	return Result{
		CIFUSD:        cifUSD,
		CIFLocal:      cifLocal,
		DutyAmount:    duty,
		VATOnCustoms:  vatOnCustoms,
		LandedCost:    landed,
		SellingPrice:  selling,
		VATApplies:    vatApplies,
		VATOnSelling:  vatOnSelling,
		FinalPrice:    final,
		Profit:        profit,
		MarginPercent: margin,
		TotalFinal:    final * float64(in.Quantity),
	}
}

const (
	VATApplyYes = "Yes"
	VATApplyNo  = "No"
)

// VATApplyLabel renders the flag the way it is stored on a product.
func VATApplyLabel(applies bool) string {
	if applies {
		return VATApplyYes
	}
	return VATApplyNo
}

// ParseVATApply reads a stored flag. ok is false for anything but "Yes" or "No".
func ParseVATApply(raw string) (applies bool, ok bool) {
	switch raw {
	case VATApplyYes:
		return true, true
	case VATApplyNo:
		return false, true
	default:
		return false, false
	}
}
