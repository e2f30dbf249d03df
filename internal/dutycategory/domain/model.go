package domain

import (
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	// OtherChoice selects a one-off duty rate that is not saved as a category.
	OtherChoice = "other"

	// RateTolerance is how close a stored product rate must be to a category
	// rate for the category to be considered selected.
	RateTolerance = 0.01
)

// DutyCategory is a named tariff preset. Categories are shared by all users
// and cannot be edited once created. Labels may repeat; the id is the identity.
type DutyCategory struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	Code      string       `gorm:"type:varchar(128);not null;uniqueIndex"`
	Label     string       `gorm:"type:text;not null"`
	Rate      float64      `gorm:"type:double precision;not null"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DutyCategory) TableName() string { return "duty_categories" }

func (c *DutyCategory) Validate() error {
	if strings.TrimSpace(c.Label) == "" {
		return ErrInvalidLabel
	}
	if c.Rate < 0 || math.IsNaN(c.Rate) || math.IsInf(c.Rate, 0) {
		return ErrInvalidRate
	}
	return nil
}

// MatchRate returns the first category whose rate is within RateTolerance of
// rate. Categories are expected in display order.
func MatchRate(categories []DutyCategory, rate float64) (*DutyCategory, bool) {
	for i := range categories {
		if math.Abs(categories[i].Rate-rate) < RateTolerance {
			return &categories[i], true
		}
	}
	return nil, false
}
