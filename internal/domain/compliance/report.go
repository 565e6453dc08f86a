package compliance

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// GenerateReportPDF writes a summary of the latest failed checks for the
// organization and returns the path of the generated file.
func (s *Service) GenerateReportPDF(ctx context.Context, orgID, reportDir string) (string, error) {
	var orgName string
	if err := s.DB.QueryRow(ctx, `
    SELECT name FROM organizations WHERE id = $1
  `, orgID).Scan(&orgName); err != nil {
		return "", err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT r.code, r.severity, e.employee_number, e.first_name || ' ' || e.last_name, COALESCE(c.details, ''), c.checked_at
    FROM compliance_checks c
    JOIN compliance_rules r ON c.rule_id = r.id
    JOIN employees e ON c.employee_id = e.id
    WHERE e.organization_id = $1 AND c.status = 'FAILED'
    ORDER BY r.severity DESC, r.code, e.employee_number
  `, orgID)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	type line struct {
		code, severity, number, name, details string
		checkedAt                             time.Time
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.code, &l.severity, &l.number, &l.name, &l.details, &l.checkedAt); err != nil {
			return "", err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(reportDir, fmt.Sprintf("compliance-%s.pdf", time.Now().Format("20060102-150405")))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Compliance Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Organization: %s", orgName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Open findings: %d", len(lines)))
	pdf.Ln(10)

	if len(lines) == 0 {
		pdf.Cell(0, 8, "No failed checks on record.")
	}
	for _, l := range lines {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, fmt.Sprintf("[%s] %s", l.severity, l.code))
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, fmt.Sprintf("%s (%s): %s", l.name, l.number, l.details))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Checked at %s", l.checkedAt.Format("2006-01-02 15:04")))
		pdf.Ln(8)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
