package spreadsheet

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestGenerateCatalog(t *testing.T) {
	catalog := Catalog{
		Currency: "BBD",
		Rows: []Row{
			{Item: "Bluetooth speaker", Quantity: 1, Cost: 100, Shipping: 20, Declared: 120, ExchangeRate: 2, Duty: 20, VAT: 17.5, Markup: 30, LandedCost: 338.4, VATApply: "Yes", FinalPrice: 516.906, TotalFinal: 516.906},
			{Item: "Phone case", Quantity: 2, Cost: 20, Shipping: 5, Declared: 25, ExchangeRate: 2, VAT: 17.5, Markup: 30, LandedCost: 50, VATApply: "No", FinalPrice: 65, TotalFinal: 130},
		},
	}

	out, err := New().GenerateCatalog(context.Background(), catalog)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	header, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Item", header)

	landed, err := f.GetCellValue(sheetName, "M1")
	require.NoError(t, err)
	assert.Equal(t, "Landed (BBD)", landed)

	item, err := f.GetCellValue(sheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Phone case", item)

	vat, err := f.GetCellValue(sheetName, "O2")
	require.NoError(t, err)
	assert.Equal(t, "Yes", vat)

	formula, err := f.GetCellFormula(sheetName, "S4")
	require.NoError(t, err)
	assert.Equal(t, "SUM(S2:S3)", formula)
}

func TestGenerateCatalogEmpty(t *testing.T) {
	out, err := New().GenerateCatalog(context.Background(), Catalog{Currency: "BBD"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
