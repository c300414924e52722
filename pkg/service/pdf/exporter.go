package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/charter-lab/charterforge/pkg/domain/interfaces"
	"github.com/charter-lab/charterforge/pkg/domain/model"
	"github.com/charter-lab/charterforge/pkg/utils/logging"
)

// Exporter produces contract PDFs. Export is best effort: when building
// the full document fails, a minimal fallback PDF containing at least
// the contract ID and vessel name is produced instead, so the caller
// always receives a downloadable artifact.
type Exporter struct{}

var _ interfaces.Exporter = &Exporter{}

// New creates an Exporter.
func New() *Exporter {
	return &Exporter{}
}

// Export renders the contract document to PDF.
func (e *Exporter) Export(ctx context.Context, doc *model.ContractDocument) ([]byte, error) {
	out, err := e.build(doc)
	if err != nil {
		logging.From(ctx).Warn("PDF generation failed, producing fallback document",
			"error", err, "contract_id", doc.ID)
		return e.fallback(doc)
	}
	return out, nil
}

func (e *Exporter) build(doc *model.ContractDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 20, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(30, 58, 138)
	pdf.CellFormat(0, 12, "YACHT CHARTER AGREEMENT", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 6, fmt.Sprintf("Contract %s - Version %s", doc.ID, doc.VersionNumber), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	e.section(pdf, "1. Vessel Specifications")
	e.line(pdf, "Vessel", doc.Vessel.Name)
	e.line(pdf, "Type", doc.Vessel.Type)
	e.line(pdf, "Flag / Registration", fmt.Sprintf("%s / %s", doc.Vessel.FlagState, doc.Vessel.OfficialNumber))
	e.line(pdf, "LOA / Beam / Draft", fmt.Sprintf("%.1fm / %.1fm / %.1fm", doc.Vessel.LengthOverall, doc.Vessel.Beam, doc.Vessel.Draft))
	e.line(pdf, "Capacity", fmt.Sprintf("%d guests, %d crew", doc.Vessel.GuestCapacity, doc.Vessel.CrewCapacity))

	e.section(pdf, "2. Charter Terms")
	e.line(pdf, "Period", fmt.Sprintf("%s to %s (%d days)",
		doc.Charter.StartDate.Format("02 Jan 2006"),
		doc.Charter.EndDate.Format("02 Jan 2006"),
		doc.Charter.DurationDays))
	e.line(pdf, "Daily Rate", fmt.Sprintf("%s %.0f", doc.Charter.Currency, doc.Charter.DailyRate))
	e.line(pdf, "Total Charter Value", fmt.Sprintf("%s %.0f", doc.Charter.Currency, doc.TotalValue))
	e.line(pdf, "Operational Area", doc.Charter.OperationalArea)

	e.section(pdf, "3. Parties")
	e.line(pdf, "Lessor", doc.Parties.Lessor.Name)
	e.line(pdf, "Lessee", doc.Parties.Lessee.Name)

	e.section(pdf, "4. Financial Terms")
	e.line(pdf, "Payment", fmt.Sprintf("%d%% on signing, %d%% %s",
		doc.Financial.PaymentSchedule1, doc.Financial.PaymentSchedule2, doc.Financial.PaymentTiming))
	e.line(pdf, "Security Deposit", fmt.Sprintf("%s %.0f (%s)",
		doc.Charter.Currency, doc.Financial.SecurityDeposit, doc.Financial.DepositMethod))

	if doc.Assessment != nil {
		e.section(pdf, "5. Risk Assessment")
		e.line(pdf, "Overall Score", fmt.Sprintf("%.2f", doc.Assessment.OverallScore))
		e.line(pdf, "Risk Level", doc.Assessment.Level.String())
		for _, cat := range doc.Assessment.Categories {
			if len(cat.ActiveFactors) == 0 {
				continue
			}
			e.line(pdf, cat.Name, fmt.Sprintf("raw %.2f, weighted %.2f", cat.RawScore, cat.WeightedScore))
		}
	}

	if len(doc.Clauses) > 0 {
		e.section(pdf, "6. Contract Clauses")
		for _, cl := range doc.Clauses {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetTextColor(30, 58, 138)
			pdf.MultiCell(0, 5, cl.Name, "", "L", false)
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(31, 41, 55)
			pdf.MultiCell(0, 4.5, cl.Content, "", "L", false)
			pdf.Ln(2)
		}
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 5, fmt.Sprintf("Contract ID: %s | Generated: %s",
		doc.ID, doc.GeneratedAt.Format("2006-01-02 15:04:05")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fallback produces a minimal PDF so the caller still receives an
// artifact when full generation fails.
func (e *Exporter) fallback(doc *model.ContractDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "YACHT CHARTER CONTRACT", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Contract ID: %s", doc.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Vessel: %s", doc.Vessel.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Full contract rendering failed; contact support with the contract ID.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Exporter) section(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(30, 58, 138)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func (e *Exporter) line(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(48, 5.5, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5.5, value, "", "L", false)
}
