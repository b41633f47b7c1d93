// Package certificates renders donation acknowledgement PDFs.
package certificates

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"amanah_backend/internals/features/donations/donations/model"
	helper "amanah_backend/internals/helpers"
)

var ErrNotCompleted = errors.New("certificate is only available for completed donations")

// Render draws an A4 landscape certificate for a completed donation.
func Render(d model.Donation, orgName string) ([]byte, error) {
	if d.DonationStatus != model.StatusCompleted {
		return nil, ErrNotCompleted
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Donation Certificate "+d.DonationOrderID, true)
	pdf.SetAuthor(orgName, true)
	pdf.SetCreator(orgName, true)
	pdf.SetCreationDate(time.Now().UTC())
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	w, h := pdf.GetPageSize()

	// double border
	pdf.SetDrawColor(11, 110, 79)
	pdf.SetLineWidth(1.5)
	pdf.Rect(10, 10, w-20, h-20, "D")
	pdf.SetLineWidth(0.4)
	pdf.Rect(15, 15, w-30, h-30, "D")

	pdf.SetY(35)
	pdf.SetTextColor(11, 110, 79)
	pdf.SetFont("Helvetica", "B", 30)
	pdf.CellFormat(0, 14, tr("Certificate of Appreciation"), "", 1, "C", false, 0, "")

	pdf.SetTextColor(60, 60, 60)
	pdf.SetFont("Helvetica", "", 14)
	pdf.Ln(6)
	pdf.CellFormat(0, 8, tr("This certificate is gratefully presented to"), "", 1, "C", false, 0, "")

	name := d.DonationDonorName
	if d.DonationIsAnonymous {
		name = "A Generous Donor"
	}
	pdf.Ln(4)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Times", "BI", 32)
	pdf.CellFormat(0, 16, tr(name), "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetTextColor(60, 60, 60)
	pdf.SetFont("Helvetica", "", 14)
	line := fmt.Sprintf("in recognition of a generous donation of %s", helper.FormatMoney(d.DonationAmount, d.DonationCurrency))
	pdf.CellFormat(0, 8, tr(line), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, tr("to "+orgName+"."), "", 1, "C", false, 0, "")

	paid := d.CreatedAt
	if d.DonationPaidAt != nil {
		paid = *d.DonationPaidAt
	}
	pdf.SetY(h - 55)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr("Date: "+paid.Format("2 January 2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr("Reference: "+d.DonationOrderID), "", 1, "C", false, 0, "")

	pdf.SetY(h - 35)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, tr("May your generosity be rewarded many times over."), "", 1, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func FileName(d model.Donation) string {
	return "certificate-" + d.DonationOrderID + ".pdf"
}
