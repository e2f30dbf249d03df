package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/landedcost/internal/pricing"
)

type settingsResponse struct {
	LocalCurrency       string  `json:"local_currency"`
	DefaultExchangeRate float64 `json:"default_exchange_rate"`
	DeMinimisUSD        float64 `json:"de_minimis_usd"`
	SellingVATRate      float64 `json:"selling_vat_rate"`
	DefaultVATRate      float64 `json:"default_vat_rate"`
	DefaultMarkup       float64 `json:"default_markup"`
	DefaultQuantity     int     `json:"default_quantity"`
}

// GetSettings reports the display settings and the fixed engine constants.
func (s *Server) GetSettings(c *gin.Context) {
	settings := s.settings.Get()
	c.JSON(http.StatusOK, gin.H{"data": settingsResponse{
		LocalCurrency:       settings.LocalCurrency,
		DefaultExchangeRate: settings.DefaultExchangeRate,
		DeMinimisUSD:        pricing.DeMinimisUSD,
		SellingVATRate:      pricing.SellingVATRate,
		DefaultVATRate:      pricing.DefaultVATRatePercent,
		DefaultMarkup:       pricing.DefaultMarkupPercent,
		DefaultQuantity:     pricing.DefaultQuantity,
	}})
}
