package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"invoice-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/shopspring/decimal"
)

// GenerateInvoicePDF renders a single invoice as a printable PDF.
func (s *InvoiceService) GenerateInvoicePDF(ctx context.Context, id string) ([]byte, error) {
	invoice, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Invoice", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Invoice ID: %s", invoice.ID), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Customer box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Billed To", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", invoice.CustomerName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Email: %s", invoice.CustomerEmail), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Invoice details
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(70, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(70, 7, timeutil.FormatDate(invoice.Date), "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 7, strings.ToUpper(invoice.Status), "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 7, formatCents(invoice.Amount), "1", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatCents renders integer cents as a dollar string ("4999" -> "$49.99").
func formatCents(cents int64) string {
	return "$" + decimal.NewFromInt(cents).Shift(-2).StringFixed(2)
}
