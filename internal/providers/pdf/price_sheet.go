package pdf

import (
	"context"
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

var (
	headerText = props.Text{Style: fontstyle.Bold, Size: 8}
	cellText   = props.Text{Size: 8}
)

func (p *PDFProvider) GeneratePriceSheet(ctx context.Context, sheet PriceSheet) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	title := sheet.Title
	if title == "" {
		title = "Price sheet"
	}
	m.AddRow(12,
		text.NewCol(12, title, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(10,
		col.New(8).Add(
			text.New(sheet.Owner, props.Text{Size: 9}),
			text.New("Generated "+sheet.GeneratedAt, props.Text{Size: 9, Top: 4}),
		),
		col.New(4),
	)

	m.AddRow(8,
		text.NewCol(3, "Item", headerText),
		text.NewCol(1, "Qty", withAlign(headerText, align.Right)),
		text.NewCol(2, "Landed", withAlign(headerText, align.Right)),
		text.NewCol(2, "Price", withAlign(headerText, align.Right)),
		text.NewCol(1, "VAT", withAlign(headerText, align.Center)),
		text.NewCol(1, "Margin", withAlign(headerText, align.Right)),
		text.NewCol(2, "Total", withAlign(headerText, align.Right)),
	)
	m.AddRow(2, line.NewCol(12))

	for _, row := range sheet.Rows {
		m.AddRow(7,
			text.NewCol(3, row.Item, cellText),
			text.NewCol(1, strconv.Itoa(row.Quantity), withAlign(cellText, align.Right)),
			text.NewCol(2, row.LandedCost, withAlign(cellText, align.Right)),
			text.NewCol(2, row.FinalPrice, withAlign(cellText, align.Right)),
			text.NewCol(1, row.VATApply, withAlign(cellText, align.Center)),
			text.NewCol(1, row.Margin, withAlign(cellText, align.Right)),
			text.NewCol(2, row.TotalFinal, withAlign(cellText, align.Right)),
		)
	}

	m.AddRow(2, line.NewCol(12))
	m.AddRow(8,
		col.New(6),
		text.NewCol(3, fmt.Sprintf("%d products", sheet.Count), props.Text{Size: 9}),
		text.NewCol(3, sheet.Total, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate price sheet: %w", err)
	}
	return doc.GetBytes(), nil
}

func withAlign(base props.Text, a align.Type) props.Text {
	base.Align = a
	return base
}
