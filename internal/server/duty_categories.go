package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	dutydomain "github.com/smallbiznis/landedcost/internal/dutycategory/domain"
)

type dutyChoice struct {
	Value   string   `json:"value"`
	Display string   `json:"display"`
	Rate    *float64 `json:"rate,omitempty"`
}

const otherChoiceDisplay = "Other..."

func (s *Server) ListDutyCategories(c *gin.Context) {
	items, err := s.dutySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	choices := make([]dutyChoice, 0, len(items)+1)
	for _, item := range items {
		rate := item.Rate
		choices = append(choices, dutyChoice{Value: item.ID, Display: item.Display, Rate: &rate})
	}
	choices = append(choices, dutyChoice{Value: dutydomain.OtherChoice, Display: otherChoiceDisplay})

	c.JSON(http.StatusOK, gin.H{
		"data":    items,
		"choices": choices,
	})
}

func (s *Server) CreateDutyCategory(c *gin.Context) {
	var req dutydomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Label = strings.TrimSpace(req.Label)

	resp, err := s.dutySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}
