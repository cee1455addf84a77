package handlers

import (
	"bytes"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"estimator/models"
	"estimator/repository"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// shareBaseURL is where the public quote share links point.
func shareBaseURL() string {
	if base := os.Getenv("SHARE_BASE_URL"); base != "" {
		return base
	}
	return "https://quotes.example.com"
}

// GenerateQuotePDF godoc
// @Summary      Generate quote PDF
// @Description  Renders the current working copy of a quote as a sectioned PDF with a share QR code. Excluded line items appear struck out with a zero total.
// @Tags         Quotes
// @Param        id   path  string  true  "Quote ID"
// @Success      200  "PDF file"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/quotes/{id}/pdf [get]
func GenerateQuotePDF(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		quoteID := c.Param("id")

		quote, status, err := repository.LoadQuote(db, quoteID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		version, err := repository.GetCurrentVersion(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		titleCaser := cases.Title(language.Und)

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.SetAutoPageBreak(true, 20)
		pdf.AddPage()

		// --- Header ---
		pdf.SetFont("Helvetica", "B", 18)
		pdf.CellFormat(0, 10, fmt.Sprintf("Estimate %s", quote.BaseNumber), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("Revision %d (%s)", version.VersionNumber, status), "", 1, "L", false, 0, "")
		pdf.Ln(3)

		if quote.JobName != "" {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, 6, titleCaser.String(quote.JobName), "", 1, "L", false, 0, "")
		}
		pdf.SetFont("Helvetica", "", 10)
		if quote.JobAddress != "" {
			pdf.CellFormat(0, 5, quote.JobAddress, "", 1, "L", false, 0, "")
		}
		if quote.ClientName != "" {
			pdf.CellFormat(0, 5, fmt.Sprintf("Prepared for: %s", quote.ClientName), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)

		// --- Share QR code, top right ---
		shareURL := fmt.Sprintf("%s/q/%s", shareBaseURL(), quote.ID)
		if png, err := qrcode.Encode(shareURL, qrcode.Medium, 256); err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("share-qr", opts, bytes.NewReader(png))
			pdf.ImageOptions("share-qr", 170, 12, 25, 25, false, opts, 0, "")
		}

		// Index line items by section
		bySection := make(map[string][]models.QuoteLineItem)
		var unsectioned []models.QuoteLineItem
		for _, li := range quote.LineItems {
			if li.SectionID == nil {
				unsectioned = append(unsectioned, li)
				continue
			}
			bySection[*li.SectionID] = append(bySection[*li.SectionID], li)
		}

		writeRow := func(li models.QuoteLineItem) {
			style := ""
			if li.IsExcluded {
				style = "I"
				pdf.SetTextColor(150, 150, 150)
			}
			pdf.SetFont("Helvetica", style, 9)
			pdf.CellFormat(80, 6, li.Description, "B", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", li.Quantity), "B", 0, "R", false, 0, "")
			pdf.CellFormat(15, 6, li.Unit, "B", 0, "C", false, 0, "")
			pdf.CellFormat(25, 6, fmt.Sprintf("$%.2f", li.UnitPrice), "B", 0, "R", false, 0, "")
			if li.IsExcluded {
				pdf.CellFormat(25, 6, "excluded", "B", 1, "R", false, 0, "")
				pdf.SetTextColor(0, 0, 0)
			} else {
				pdf.CellFormat(25, 6, fmt.Sprintf("$%.2f", li.Total()), "B", 1, "R", false, 0, "")
			}
		}

		writeTableHeader := func() {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.SetFillColor(235, 235, 235)
			pdf.CellFormat(80, 7, "Description", "1", 0, "L", true, 0, "")
			pdf.CellFormat(25, 7, "Qty", "1", 0, "R", true, 0, "")
			pdf.CellFormat(15, 7, "Unit", "1", 0, "C", true, 0, "")
			pdf.CellFormat(25, 7, "Price", "1", 0, "R", true, 0, "")
			pdf.CellFormat(25, 7, "Total", "1", 1, "R", true, 0, "")
		}

		for _, section := range quote.Sections {
			items := bySection[section.ID]
			if len(items) == 0 {
				continue
			}

			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 8, titleCaser.String(section.Name), "", 1, "L", false, 0, "")
			writeTableHeader()

			var sectionTotal float64
			for _, li := range items {
				writeRow(li)
				sectionTotal += li.Total()
			}

			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(145, 6, "Section total", "", 0, "R", false, 0, "")
			pdf.CellFormat(25, 6, fmt.Sprintf("$%.2f", sectionTotal), "T", 1, "R", false, 0, "")
			pdf.Ln(4)
		}

		if len(unsectioned) > 0 {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 8, "Other Items", "", 1, "L", false, 0, "")
			writeTableHeader()
			for _, li := range unsectioned {
				writeRow(li)
			}
			pdf.Ln(4)
		}

		// --- Grand total ---
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(145, 8, "Total", "", 0, "R", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("$%.2f", quote.Total()), "T", 1, "R", false, 0, "")

		if quote.Notes != "" {
			pdf.Ln(6)
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(0, 5, quote.Notes, "", "L", false)
		}

		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render PDF"})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=estimate_%s.pdf", quote.BaseNumber))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}
