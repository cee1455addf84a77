package handlers

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"net/http"

	"estimator/models"
	"estimator/repository"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{"Section", "Description", "Quantity", "Unit", "UnitCost", "UnitPrice", "Total", "Excluded", "Notes"}

// exportRows flattens a quote into ordered export rows with section names.
func exportRows(quote models.Quote) [][]string {
	sectionNames := make(map[string]string, len(quote.Sections))
	for _, s := range quote.Sections {
		sectionNames[s.ID] = s.Name
	}

	var rows [][]string
	for _, li := range quote.LineItems {
		sectionName := ""
		if li.SectionID != nil {
			sectionName = sectionNames[*li.SectionID]
		}
		excluded := ""
		if li.IsExcluded {
			excluded = "yes"
		}
		rows = append(rows, []string{
			sectionName,
			li.Description,
			fmt.Sprintf("%.2f", li.Quantity),
			li.Unit,
			fmt.Sprintf("%.2f", li.UnitCost),
			fmt.Sprintf("%.2f", li.UnitPrice),
			fmt.Sprintf("%.2f", li.Total()),
			excluded,
			li.Notes,
		})
	}
	return rows
}

// ExportQuoteCSV godoc
// @Summary      Export quote as CSV
// @Tags         export
// @Produce      text/csv
// @Param        id  path  string  true  "Quote ID"
// @Success      200  {file}  file  "CSV file"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/quotes/{id}/export_csv [get]
func ExportQuoteCSV(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		quote, _, err := repository.LoadQuote(db, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=estimate_%s.csv", quote.BaseNumber))

		writer := csv.NewWriter(c.Writer)
		defer writer.Flush()

		if err := writer.Write(exportHeader); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV header"})
			return
		}
		for _, row := range exportRows(quote) {
			if err := writer.Write(row); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV row"})
				return
			}
		}

		// Trailing total row
		totalRow := []string{"", "Total", "", "", "", "", fmt.Sprintf("%.2f", quote.Total()), "", ""}
		if err := writer.Write(totalRow); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing CSV total row"})
			return
		}
	}
}

// ExportQuoteXLSX godoc
// @Summary      Export quote as XLSX
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id  path  string  true  "Quote ID"
// @Success      200  {file}  file  "XLSX file"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/quotes/{id}/export_xlsx [get]
func ExportQuoteXLSX(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		quote, _, err := repository.LoadQuote(db, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		f := excelize.NewFile()
		sheet := "Estimate"
		f.SetSheetName(f.GetSheetName(0), sheet)

		for col, title := range exportHeader {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sheet, cell, title)
		}

		headerStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#EBEBEB"}, Pattern: 1},
		})
		if err == nil {
			endCell, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
			f.SetCellStyle(sheet, "A1", endCell, headerStyle)
		}

		rowIndex := 2
		for _, row := range exportRows(quote) {
			for col, value := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, rowIndex)
				f.SetCellValue(sheet, cell, value)
			}
			rowIndex++
		}

		totalLabel, _ := excelize.CoordinatesToCellName(2, rowIndex)
		totalValue, _ := excelize.CoordinatesToCellName(7, rowIndex)
		f.SetCellValue(sheet, totalLabel, "Total")
		f.SetCellValue(sheet, totalValue, fmt.Sprintf("%.2f", quote.Total()))

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=estimate_%s.xlsx", quote.BaseNumber))

		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing XLSX file"})
			return
		}
	}
}
