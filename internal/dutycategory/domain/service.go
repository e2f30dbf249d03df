package domain

import (
	"context"
	"strings"
	"time"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	ResolveRate(ctx context.Context, sel Selection) (float64, error)
	SelectionFor(ctx context.Context, rate float64) (Selection, error)
}

type CreateRequest struct {
	Label string   `json:"label"`
	Rate  *float64 `json:"rate"`
}

// Selection is the duty dropdown state of a product form: either a category
// id or OtherChoice with a free-form rate.
type Selection struct {
	Choice    string   `json:"duty_choice"`
	OtherRate *float64 `json:"duty_other,omitempty"`
}

// IsOther reports whether the selection carries its own rate. An empty
// choice counts as other; the match ignores case and surrounding space.
func (s Selection) IsOther() bool {
	choice := strings.TrimSpace(s.Choice)
	return choice == "" || strings.EqualFold(choice, OtherChoice)
}

type Response struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Label     string    `json:"label"`
	Rate      float64   `json:"rate"`
	Display   string    `json:"display"`
	CreatedAt time.Time `json:"created_at"`
}
