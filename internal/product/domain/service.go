package domain

import (
	"context"
	"time"

	dutydomain "github.com/smallbiznis/landedcost/internal/dutycategory/domain"
	"github.com/smallbiznis/landedcost/internal/pricing"
	"github.com/smallbiznis/landedcost/internal/pricing/format"
)

type Service interface {
	Preview(ctx context.Context, req Request) (*PreviewResponse, error)
	Create(ctx context.Context, req Request) (*Response, error)
	Update(ctx context.Context, id string, req Request) (*Response, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) (*ListResponse, error)
	Get(ctx context.Context, id string) (*Response, error)
	EditView(ctx context.Context, id string) (*EditView, error)
	NewForm() Form
}

// Request is the product form. Optional numbers are pointers; nil takes the
// engine default.
type Request struct {
	Item       string   `json:"item"`
	Quantity   *int     `json:"quantity"`
	Link       string   `json:"link"`
	Cost       *float64 `json:"cost"`
	Shipping   *float64 `json:"shipping"`
	Declared   *float64 `json:"declared"`
	Rate       *float64 `json:"rate"`
	Markup     *float64 `json:"markup"`
	VAT        *float64 `json:"vat"`
	Carrier    *float64 `json:"carrier"`
	Handling   *float64 `json:"handling"`
	DutyChoice string   `json:"duty_choice"`
	DutyOther  *float64 `json:"duty_other"`
}

func (r Request) DutySelection() dutydomain.Selection {
	return dutydomain.Selection{Choice: r.DutyChoice, OtherRate: r.DutyOther}
}

// Fields maps the form onto engine fields using an already resolved duty rate.
func (r Request) Fields(dutyRate float64) pricing.Fields {
	return pricing.Fields{
		Cost:            r.Cost,
		Shipping:        r.Shipping,
		Declared:        r.Declared,
		ExchangeRate:    r.Rate,
		DutyRatePercent: &dutyRate,
		VATRatePercent:  r.VAT,
		MarkupPercent:   r.Markup,
		CarrierFee:      r.Carrier,
		HandlingFee:     r.Handling,
		Quantity:        r.Quantity,
	}
}

type Response struct {
	ID        string          `json:"id"`
	Item      string          `json:"item"`
	Quantity  int             `json:"quantity"`
	Link      string          `json:"link,omitempty"`
	Cost      float64         `json:"cost"`
	Shipping  float64         `json:"shipping"`
	Declared  float64         `json:"declared"`
	Rate      float64         `json:"rate"`
	Markup    float64         `json:"markup"`
	VAT       float64         `json:"vat"`
	Duty      float64         `json:"duty"`
	Carrier   float64         `json:"carrier"`
	Handling  float64         `json:"handling"`
	VATApply  string          `json:"vat_apply"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Pricing   *pricing.Result `json:"pricing,omitempty"`
	Display   *format.Display `json:"display,omitempty"`
}

type ListResponse struct {
	Items  []Response `json:"items"`
	Totals Totals     `json:"totals"`
}

type Totals struct {
	Count             int     `json:"count"`
	TotalFinal        float64 `json:"total_final"`
	TotalFinalDisplay string  `json:"total_final_display"`
}

type Inputs struct {
	Cost            float64 `json:"cost"`
	Shipping        float64 `json:"shipping"`
	Declared        float64 `json:"declared"`
	ExchangeRate    float64 `json:"rate"`
	DutyRatePercent float64 `json:"duty"`
	VATRatePercent  float64 `json:"vat"`
	MarkupPercent   float64 `json:"markup"`
	CarrierFee      float64 `json:"carrier"`
	HandlingFee     float64 `json:"handling"`
	Quantity        int     `json:"quantity"`
}

func NewInputs(in pricing.CostInputs) Inputs {
	return Inputs{
		Cost:            in.Cost,
		Shipping:        in.Shipping,
		Declared:        in.Declared,
		ExchangeRate:    in.ExchangeRate,
		DutyRatePercent: in.DutyRatePercent,
		VATRatePercent:  in.VATRatePercent,
		MarkupPercent:   in.MarkupPercent,
		CarrierFee:      in.CarrierFee,
		HandlingFee:     in.HandlingFee,
		Quantity:        in.Quantity,
	}
}

type PreviewResponse struct {
	Inputs  Inputs         `json:"inputs"`
	Pricing pricing.Result `json:"pricing"`
	Display format.Display `json:"display"`
}

// Form is a product form prefilled for editing or for a new entry.
type Form struct {
	Item       string   `json:"item"`
	Quantity   int      `json:"quantity"`
	Link       string   `json:"link"`
	Cost       *float64 `json:"cost"`
	Shipping   float64  `json:"shipping"`
	Declared   *float64 `json:"declared"`
	Rate       float64  `json:"rate"`
	Markup     float64  `json:"markup"`
	VAT        float64  `json:"vat"`
	Carrier    float64  `json:"carrier"`
	Handling   float64  `json:"handling"`
	DutyChoice string   `json:"duty_choice"`
	DutyOther  *float64 `json:"duty_other,omitempty"`
}

type EditView struct {
	Product Response `json:"product"`
	Form    Form     `json:"form"`
}
