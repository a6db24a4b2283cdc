package leave

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"hrportal/internal/domain/directory"
	"hrportal/internal/platform/dates"
)

// RenderHistoryPDF writes a one-table leave history for requester.
func RenderHistoryPDF(w io.Writer, requester directory.User, requests []Request) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Leave History")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Name: %s (%s)", requester.Name, requester.Role))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", requester.Email))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	for _, header := range []struct {
		label string
		width float64
	}{{"Start", 30}, {"End", 30}, {"Days", 18}, {"Status", 28}, {"Reason", 84}} {
		pdf.CellFormat(header.width, 8, header.label, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	var approved float64
	for _, req := range requests {
		pdf.CellFormat(30, 7, dates.Format(req.StartDate), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, dates.Format(req.EndDate), "1", 0, "L", false, 0, "")
		pdf.CellFormat(18, 7, fmt.Sprintf("%.1f", req.Days), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 7, req.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(84, 7, truncate(req.Reason, 48), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
		if req.Status == StatusApproved {
			approved += req.Days
		}
	}
	pdf.Ln(4)
	pdf.Cell(0, 8, fmt.Sprintf("Approved days: %.1f", approved))

	return pdf.Output(w)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
