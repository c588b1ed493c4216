package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// ReceiptData carries everything the printable donation receipt needs.
type ReceiptData struct {
	TempleName    string
	TempleAddress string
	EightyGNumber string
	ReceiptNumber string
	Date          string
	DevoteeName   string
	PANNumber     string
	Category      string
	PaymentMode   string
	Purpose       string
	Amount        string
	EightyG       bool
}

// DonationReceiptPDF renders an A5 donation receipt. When the donation is
// 80G-eligible the temple's exemption certificate number is printed.
func DonationReceiptPDF(data ReceiptData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, data.TempleName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, data.TempleAddress, "", 1, "C", false, 0, "")
	if data.EightyG && data.EightyGNumber != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("80G Certificate No: %s", data.EightyGNumber), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "DONATION RECEIPT", "B", 1, "C", false, 0, "")
	pdf.Ln(4)

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	row("Receipt No:", data.ReceiptNumber)
	row("Date:", data.Date)
	row("Received From:", data.DevoteeName)
	if data.PANNumber != "" {
		row("PAN:", data.PANNumber)
	}
	row("Category:", data.Category)
	row("Payment Mode:", data.PaymentMode)
	if data.Purpose != "" {
		row("Purpose:", data.Purpose)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, fmt.Sprintf("Amount: Rs. %s", data.Amount), "TB", 1, "L", false, 0, "")
	pdf.Ln(8)

	if data.EightyG {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.MultiCell(0, 4, "Donation is eligible for deduction under Section 80G of the Income Tax Act, 1961.", "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 7, "Authorised Signatory", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}
