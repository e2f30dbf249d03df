package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/landedcost/internal/pricing"
)

// Product is one catalog line. Monetary inputs are stored already normalized
// (defaults applied) so a stored row always rebuilds the same CostInputs.
type Product struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	UserID    snowflake.ID `gorm:"column:user_id;not null;index:idx_products_user_created,priority:1"`
	Item      string       `gorm:"type:text;not null"`
	Quantity  int          `gorm:"not null;default:1"`
	Link      string       `gorm:"type:varchar(2048);not null;default:''"`
	Cost      float64      `gorm:"type:double precision;not null"`
	Shipping  float64      `gorm:"type:double precision;not null;default:0"`
	Declared  float64      `gorm:"type:double precision;not null"`
	Rate      float64      `gorm:"type:double precision;not null"`
	Markup    float64      `gorm:"type:double precision;not null"`
	VAT       float64      `gorm:"column:vat;type:double precision;not null"`
	Duty      float64      `gorm:"type:double precision;not null;default:0"`
	Carrier   float64      `gorm:"type:double precision;not null;default:0"`
	Handling  float64      `gorm:"type:double precision;not null;default:0"`
	VATApply  string       `gorm:"column:vat_apply;type:varchar(8);not null"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_products_user_created,priority:2"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Product) TableName() string { return "products" }

// Fields returns the stored values as engine fields.
func (p *Product) Fields() pricing.Fields {
	quantity := p.Quantity
	return pricing.Fields{
		Cost:            &p.Cost,
		Shipping:        &p.Shipping,
		Declared:        &p.Declared,
		ExchangeRate:    &p.Rate,
		DutyRatePercent: &p.Duty,
		VATRatePercent:  &p.VAT,
		MarkupPercent:   &p.Markup,
		CarrierFee:      &p.Carrier,
		HandlingFee:     &p.Handling,
		Quantity:        &quantity,
	}
}

// Apply overwrites every priced field from normalized inputs and recomputes
// the stored VAT flag.
func (p *Product) Apply(in pricing.CostInputs, r pricing.Result) {
	p.Quantity = in.Quantity
	p.Cost = in.Cost
	p.Shipping = in.Shipping
	p.Declared = in.Declared
	p.Rate = in.ExchangeRate
	p.Markup = in.MarkupPercent
	p.VAT = in.VATRatePercent
	p.Duty = in.DutyRatePercent
	p.Carrier = in.CarrierFee
	p.Handling = in.HandlingFee
	p.VATApply = pricing.VATApplyLabel(r.VATApplies)
}
