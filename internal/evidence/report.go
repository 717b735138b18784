// Package evidence renders a fixed-layout incident report for one alert.
// Rendering never mutates the alert or the store.
package evidence

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/sentinel-security/sentinel-console/internal/domain"
)

// ImageFetcher retrieves the evidence frame for embedding. Optional: without
// one the report carries a text reference to the image location instead.
type ImageFetcher interface {
	Fetch(url string) ([]byte, error)
}

type Report struct {
	companyName    string
	monitoringZone string
	fetcher        ImageFetcher
}

func NewReport(companyName, monitoringZone string, fetcher ImageFetcher) *Report {
	return &Report{
		companyName:    companyName,
		monitoringZone: monitoringZone,
		fetcher:        fetcher,
	}
}

// Render produces the single-page PDF for one alert. Deterministic for the
// same alert and now; the only wall-clock content is the generation footer,
// stamped once from now. Image embedding is best-effort: any failure
// degrades to the text-only source reference, partial evidence being
// preferable to none for an audit trail.
func (r *Report) Render(a domain.Alert, now time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(15, 23, 42)
	pdf.Rect(0, 0, 210, 40, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.Text(20, 25, strings.ToUpper(r.companyName))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(20, 32, "INCIDENT EVIDENCE REPORT")

	// Alert details
	pdf.SetTextColor(50, 50, 50)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(20, 55, "Alert Details")

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(20, 65, "Alert ID: "+strings.ToUpper(a.ID))
	pdf.Text(20, 72, "Date/Time: "+a.CreatedAt.Format("2006-01-02 15:04:05"))
	pdf.Text(20, 79, "Status: "+string(a.Status))
	pdf.Text(20, 86, "Location: "+r.monitoringZone)
	pdf.Text(20, 93, "Identification: "+a.Identification())
	pdf.Text(20, 100, fmt.Sprintf("Similarity Score: %.1f%%", domain.SimilarityPercent(a.Distance)))

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, 105, 190, 105)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(20, 115, "Visual Evidence")

	if !r.embedImage(pdf, a.ImageURL) {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.Text(20, 125, "* Images are attached to the digital evidence log in the cloud.")
		pdf.Text(20, 130, "Source URL: "+a.ImageURL)
	}

	// Footer
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.SetXY(0, 277)
	pdf.CellFormat(210, 5, "This document is an automated security report. Confidential.", "", 1, "C", false, 0, "")
	pdf.CellFormat(210, 5, "Generated on: "+now.Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render evidence report: %w", err)
	}

	return buf.Bytes(), nil
}

// embedImage reports whether the evidence frame made it into the document.
func (r *Report) embedImage(pdf *fpdf.Fpdf, url string) bool {
	if r.fetcher == nil || url == "" {
		return false
	}

	data, err := r.fetcher.Fetch(url)
	if err != nil {
		return false
	}

	var imageType string
	switch http.DetectContentType(data) {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg":
		imageType = "JPG"
	default:
		return false
	}

	opts := fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	pdf.RegisterImageOptionsReader("evidence-frame", opts, bytes.NewReader(data))
	if pdf.Err() {
		pdf.ClearError()
		return false
	}

	pdf.ImageOptions("evidence-frame", 20, 122, 80, 0, false, opts, 0, "")
	if pdf.Err() {
		pdf.ClearError()
		return false
	}

	return true
}

// Filename returns the download name for one alert's report.
func Filename(alertID string) string {
	short := alertID
	if len(short) > 8 {
		short = short[:8]
	}
	return "Sentinel_Alert_" + short + ".pdf"
}
