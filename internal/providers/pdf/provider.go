package pdf

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)

type Provider interface {
	GeneratePriceSheet(ctx context.Context, sheet PriceSheet) ([]byte, error)
}

// PriceSheet is a printable catalog. All values are preformatted.
type PriceSheet struct {
	Title       string
	Owner       string
	GeneratedAt string
	Rows        []PriceRow
	Count       int
	Total       string
}

type PriceRow struct {
	Item       string
	Quantity   int
	Declared   string
	LandedCost string
	FinalPrice string
	VATApply   string
	Margin     string
	TotalFinal string
}
