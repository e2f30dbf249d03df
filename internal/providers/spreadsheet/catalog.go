package spreadsheet

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.spreadsheet",
	fx.Provide(New),
)

const sheetName = "Catalog"

type Provider interface {
	GenerateCatalog(ctx context.Context, catalog Catalog) ([]byte, error)
}

// Catalog holds raw numbers so the workbook stays sortable.
type Catalog struct {
	Currency string
	Rows     []Row
}

type Row struct {
	Item         string
	Quantity     int
	Link         string
	Cost         float64
	Shipping     float64
	Declared     float64
	ExchangeRate float64
	Duty         float64
	VAT          float64
	Markup       float64
	Carrier      float64
	Handling     float64
	LandedCost   float64
	SellingPrice float64
	VATApply     string
	FinalPrice   float64
	Profit       float64
	Margin       float64
	TotalFinal   float64
}

type column struct {
	title string
	width float64
	local bool
}

type ExcelProvider struct{}

func New() Provider {
	return &ExcelProvider{}
}

func columns(currency string) []column {
	local := func(name string) string { return fmt.Sprintf("%s (%s)", name, currency) }
	return []column{
		{title: "Item", width: 32},
		{title: "Qty", width: 6},
		{title: "Link", width: 30},
		{title: "Cost (USD)", width: 12},
		{title: "Shipping (USD)", width: 14},
		{title: "Declared (USD)", width: 14},
		{title: "Rate", width: 8},
		{title: "Duty %", width: 8},
		{title: "VAT %", width: 8},
		{title: "Markup %", width: 10},
		{title: local("Carrier"), width: 14, local: true},
		{title: local("Handling"), width: 14, local: true},
		{title: local("Landed"), width: 14, local: true},
		{title: local("Selling"), width: 14, local: true},
		{title: "VAT Apply", width: 10},
		{title: local("Final"), width: 14, local: true},
		{title: local("Profit"), width: 14, local: true},
		{title: "Margin %", width: 10},
		{title: local("Total"), width: 14, local: true},
	}
}

func (r Row) values() []any {
	return []any{
		r.Item, r.Quantity, r.Link,
		r.Cost, r.Shipping, r.Declared, r.ExchangeRate,
		r.Duty, r.VAT, r.Markup,
		r.Carrier, r.Handling, r.LandedCost, r.SellingPrice,
		r.VATApply, r.FinalPrice, r.Profit, r.Margin, r.TotalFinal,
	}
}

func (p *ExcelProvider) GenerateCatalog(ctx context.Context, catalog Catalog) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	cols := columns(catalog.Currency)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("create money style: %w", err)
	}

	for i, c := range cols {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, name, name, c.width); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
		cell := name + "1"
		if err := f.SetCellValue(sheetName, cell, c.title); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for r, row := range catalog.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, err
		}
		values := row.values()
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	if n := len(catalog.Rows); n > 0 {
		for i, c := range cols {
			if !c.local {
				continue
			}
			name, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetCellStyle(sheetName, name+"2", fmt.Sprintf("%s%d", name, n+1), moneyStyle); err != nil {
				return nil, err
			}
		}

		totalCol, _ := excelize.ColumnNumberToName(len(cols))
		totalRow := n + 2
		labelCol, _ := excelize.ColumnNumberToName(len(cols) - 1)
		if err := f.SetCellValue(sheetName, fmt.Sprintf("%s%d", labelCol, totalRow), "Total"); err != nil {
			return nil, err
		}
		if err := f.SetCellFormula(sheetName, fmt.Sprintf("%s%d", totalCol, totalRow),
			fmt.Sprintf("SUM(%s2:%s%d)", totalCol, totalCol, n+1)); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
