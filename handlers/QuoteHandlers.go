package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"

	"estimator/models"
	"estimator/repository"
	"estimator/services"

	"github.com/gin-gonic/gin"
)

// costMargin reads the configured cost-to-price ratio for manual line items.
func costMargin() float64 {
	if raw := os.Getenv("DEFAULT_COST_MARGIN"); raw != "" {
		if margin, err := strconv.ParseFloat(raw, 64); err == nil && margin > 0 && margin <= 1 {
			return margin
		}
		log.Printf("Invalid DEFAULT_COST_MARGIN %q, using default", raw)
	}
	return services.DefaultCostMargin
}

// ListQuotes lists all quotes
// @Summary List quotes
// @Tags Quotes
// @Produce json
// @Success 200 {object} models.QuoteListResponse
// @Router /api/quotes [get]
func ListQuotes(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := repository.ListQuotes(db)
		if err != nil {
			log.Printf("Failed to list quotes: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quotes"})
			return
		}

		c.JSON(http.StatusOK, models.QuoteListResponse{
			Success: true,
			Message: "Quotes fetched successfully",
			Data:    records,
		})
	}
}

// GetQuote fetches the current working copy of one quote
// @Summary Get quote
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} models.QuoteResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/quotes/{id} [get]
func GetQuote(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		quote, status, err := repository.LoadQuote(db, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.QuoteResponse{
			Success: true,
			Message: "Quote fetched successfully",
			Data:    &quote,
			Status:  status,
		})
	}
}

// quoteContentsInput is the editable portion of a quote.
type quoteContentsInput struct {
	Sections  []models.QuoteSection  `json:"sections"`
	LineItems []models.QuoteLineItem `json:"line_items" binding:"required"`
}

// UpdateQuoteContents replaces the sections and line items of a quote's
// working copy
// @Summary Update quote contents
// @Description Replaces the working copy's sections and line items. Rejected while the quote is locked; start an amendment first.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param request body handlers.quoteContentsInput true "New sections and line items"
// @Success 200 {object} models.QuoteResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/quotes/{id}/contents [put]
func UpdateQuoteContents(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		quoteID := c.Param("id")

		rec, err := repository.GetQuoteRecord(db, quoteID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if rec.IsLocked {
			c.JSON(http.StatusConflict, gin.H{"error": "Quote is locked, start an amendment to modify it"})
			return
		}

		var input quoteContentsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		version, err := repository.GetCurrentVersion(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		quote := models.Quote{LineItems: input.LineItems}
		if err := repository.ReplaceVersionContents(db, version.ID, input.Sections, input.LineItems, quote.Total()); err != nil {
			log.Printf("Failed to update quote %s contents: %v", quoteID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quote"})
			return
		}

		updated, status, err := repository.LoadQuote(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, models.QuoteResponse{
			Success: true,
			Message: "Quote updated successfully",
			Data:    &updated,
			Status:  status,
		})
	}
}

// AddManualLineItem appends a free-form line item to a quote
// @Summary Add manual line item
// @Description Adds a free-form line item. A flat cost with no explicit unit economics derives the unit cost from the configured margin.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param request body models.ManualLineItemInput true "Line item entry"
// @Success 200 {object} models.QuoteResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/quotes/{id}/line_items [post]
func AddManualLineItem(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		quoteID := c.Param("id")

		rec, err := repository.GetQuoteRecord(db, quoteID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if rec.IsLocked {
			c.JSON(http.StatusConflict, gin.H{"error": "Quote is locked, start an amendment to modify it"})
			return
		}

		var input models.ManualLineItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		quote, status, err := repository.LoadQuote(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		lineItem := services.LineItemFromManualInput(input, costMargin())
		lineItem.SortOrder = len(quote.LineItems)
		quote.LineItems = append(quote.LineItems, lineItem)

		version, err := repository.GetCurrentVersion(db, quoteID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := repository.ReplaceVersionContents(db, version.ID, quote.Sections, quote.LineItems, quote.Total()); err != nil {
			log.Printf("Failed to add line item to quote %s: %v", quoteID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add line item"})
			return
		}

		c.JSON(http.StatusOK, models.QuoteResponse{
			Success: true,
			Message: "Line item added successfully",
			Data:    &quote,
			Status:  status,
		})
	}
}
