package handlers

import (
	"bytes"
	"database/sql"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"net/http"

	"estimator/repository"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// addLabel adds text to an image at the specified position
func addLabel(img *image.RGBA, x, y int, label string) {
	col := color.RGBA{0, 0, 0, 255}
	face := inconsolata.Regular8x16

	point := fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  point,
	}
	d.DrawString(label)
}

// addLabelBold adds bold text for field labels
func addLabelBold(img *image.RGBA, x, y int, label string) {
	col := color.RGBA{30, 30, 30, 255}
	face := inconsolata.Bold8x16

	point := fixed.Point26_6{
		X: fixed.Int26_6(x * 64),
		Y: fixed.Int26_6(y * 64),
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  point,
	}
	d.DrawString(label)
}

func truncateLabel(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

// GenerateQuoteQRCodeJPEG godoc
// @Summary      Generate quote share QR code as JPEG
// @Description  Encodes the public share link of a quote as a QR code with a printed label block below it
// @Tags         qr
// @Param        id   path      string  true  "Quote ID"
// @Success      200  {file}    file  "JPEG image"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/quotes/{id}/qr [get]
func GenerateQuoteQRCodeJPEG(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		quoteID := c.Param("id")
		if quoteID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quote ID is required"})
			return
		}

		rec, err := repository.GetQuoteRecord(db, quoteID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		version, err := repository.GetCurrentVersion(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		shareURL := fmt.Sprintf("%s/q/%s", shareBaseURL(), rec.ID)
		qr, err := qrcode.New(shareURL, qrcode.Medium)
		if err != nil {
			c.String(http.StatusInternalServerError, "QR code generation failed")
			return
		}

		qrImg := qr.Image(512)

		qrSize := qrImg.Bounds().Dy()
		padding := 30
		lineHeight := 28
		textAreaHeight := 4*lineHeight + padding
		totalHeight := qrSize + padding + textAreaHeight

		combinedImg := image.NewRGBA(image.Rect(0, 0, qrSize, totalHeight))
		draw.Draw(combinedImg, combinedImg.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)

		qrRect := image.Rect(0, 0, qrSize, qrSize)
		draw.Draw(combinedImg, qrRect, qrImg, image.Point{}, draw.Src)

		// Separator line between QR code and the label block
		separatorY := qrSize + padding/2
		for x := 0; x < qrSize; x++ {
			combinedImg.Set(x, separatorY, color.RGBA{200, 200, 200, 255})
		}

		startY := qrSize + padding + lineHeight
		xPos := 20

		addLabelBold(combinedImg, xPos, startY, "Estimate:")
		addLabel(combinedImg, xPos+130, startY, rec.BaseNumber)

		addLabelBold(combinedImg, xPos, startY+lineHeight, "Job:")
		addLabel(combinedImg, xPos+130, startY+lineHeight, truncateLabel(rec.JobName, 30))

		addLabelBold(combinedImg, xPos, startY+2*lineHeight, "Client:")
		addLabel(combinedImg, xPos+130, startY+2*lineHeight, truncateLabel(rec.ClientName, 30))

		addLabelBold(combinedImg, xPos, startY+3*lineHeight, "Revision:")
		addLabel(combinedImg, xPos+130, startY+3*lineHeight, fmt.Sprintf("%d (%s)", version.VersionNumber, rec.Status))

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, combinedImg, nil); err != nil {
			c.String(http.StatusInternalServerError, "JPEG encoding failed")
			return
		}

		c.Data(http.StatusOK, "image/jpeg", buf.Bytes())
	}
}
