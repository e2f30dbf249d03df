package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/landedcost/internal/pricing/format"
	productdomain "github.com/smallbiznis/landedcost/internal/product/domain"
	"github.com/smallbiznis/landedcost/internal/providers/pdf"
	"github.com/smallbiznis/landedcost/internal/providers/spreadsheet"
	"go.uber.org/zap"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

func (s *Server) ExportProductsSpreadsheet(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := s.productSvc.List(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	catalog := spreadsheet.Catalog{Currency: s.settings.Get().LocalCurrency}
	for _, p := range list.Items {
		catalog.Rows = append(catalog.Rows, spreadsheetRow(p))
	}

	out, err := s.spreadsheet.GenerateCatalog(ctx, catalog)
	if err != nil {
		s.log.Error("spreadsheet export failed", zap.Error(err))
		AbortWithError(c, err)
		return
	}

	s.attachment(c, "catalog.xlsx", mimeXLSX, out)
}

func (s *Server) ExportProductsPDF(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := s.productSvc.List(ctx)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	sheet := pdf.PriceSheet{
		Title:       "Product Catalog",
		GeneratedAt: s.clock.Now().Format("2006-01-02 15:04 MST"),
		Count:       list.Totals.Count,
		Total:       list.Totals.TotalFinalDisplay,
	}
	if userID, ok := currentUserID(c); ok {
		if user, err := s.authsvc.GetUser(ctx, userID); err == nil {
			sheet.Owner = user.DisplayName
		}
	}
	for _, p := range list.Items {
		sheet.Rows = append(sheet.Rows, priceRow(p))
	}

	out, err := s.pdf.GeneratePriceSheet(ctx, sheet)
	if err != nil {
		s.log.Error("pdf export failed", zap.Error(err))
		AbortWithError(c, err)
		return
	}

	s.attachment(c, "catalog.pdf", mimePDF, out)
}

func (s *Server) attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, body)
}

func spreadsheetRow(p productdomain.Response) spreadsheet.Row {
	row := spreadsheet.Row{
		Item:         p.Item,
		Quantity:     p.Quantity,
		Link:         p.Link,
		Cost:         p.Cost,
		Shipping:     p.Shipping,
		Declared:     p.Declared,
		ExchangeRate: p.Rate,
		Duty:         p.Duty,
		VAT:          p.VAT,
		Markup:       p.Markup,
		Carrier:      p.Carrier,
		Handling:     p.Handling,
		VATApply:     p.VATApply,
	}
	if r := p.Pricing; r != nil {
		row.LandedCost = r.LandedCost
		row.SellingPrice = r.SellingPrice
		row.FinalPrice = r.FinalPrice
		row.Profit = r.Profit
		row.Margin = r.MarginPercent
		row.TotalFinal = r.TotalFinal
	}
	return row
}

// priceRow leaves the priced columns as "-" for rows that could not be priced.
func priceRow(p productdomain.Response) pdf.PriceRow {
	row := pdf.PriceRow{
		Item:       p.Item,
		Quantity:   p.Quantity,
		Declared:   format.USD(p.Declared),
		VATApply:   p.VATApply,
		LandedCost: "-",
		FinalPrice: "-",
		Margin:     "-",
		TotalFinal: "-",
	}
	if d := p.Display; d != nil {
		row.LandedCost = d.LandedCost
		row.FinalPrice = d.FinalPrice
		row.Margin = d.Margin
		row.TotalFinal = d.TotalFinal
	}
	return row
}
