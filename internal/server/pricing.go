package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/landedcost/internal/pricing"
	productdomain "github.com/smallbiznis/landedcost/internal/product/domain"
)

// PreviewPricing prices an unsaved form. Nothing is stored.
func (s *Server) PreviewPricing(c *gin.Context) {
	var req productdomain.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Preview(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// PreviewPricingQuery prices the form fields passed as query parameters, the
// way the form re-renders its preview on every keystroke. Blank or
// non-numeric fields fall back to their defaults.
func (s *Server) PreviewPricingQuery(c *gin.Context) {
	resp, err := s.productSvc.Preview(c.Request.Context(), previewRequestFromQuery(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func previewRequestFromQuery(c *gin.Context) productdomain.Request {
	return productdomain.Request{
		Item:       c.Query("item"),
		Quantity:   pricing.ParseInt(c.Query("quantity")),
		Link:       c.Query("link"),
		Cost:       pricing.ParseNumber(c.Query("cost")),
		Shipping:   pricing.ParseNumber(c.Query("shipping")),
		Declared:   pricing.ParseNumber(c.Query("declared")),
		Rate:       pricing.ParseNumber(c.Query("rate")),
		Markup:     pricing.ParseNumber(c.Query("markup")),
		VAT:        pricing.ParseNumber(c.Query("vat")),
		Carrier:    pricing.ParseNumber(c.Query("carrier")),
		Handling:   pricing.ParseNumber(c.Query("handling")),
		DutyChoice: c.Query("duty_choice"),
		DutyOther:  pricing.ParseNumber(c.Query("duty_other")),
	}
}
