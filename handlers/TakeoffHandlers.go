package handlers

import (
	"database/sql"
	"log"
	"net/http"

	"estimator/models"
	"estimator/repository"
	"estimator/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// loadTakeoffResolver builds a catalog resolver from the takeoff-enabled
// catalog items.
func loadTakeoffResolver(gdb *gorm.DB) (*services.CatalogResolver, error) {
	var items []models.CatalogItemGorm
	if err := gdb.Where("takeoff_enabled = ?", true).Find(&items).Error; err != nil {
		return nil, err
	}
	return services.NewCatalogResolver(items), nil
}

// TakeoffSummary godoc
// @Summary Aggregate plan annotations into a priced takeoff summary
// @Description Turns count, polyline and polygon annotations plus a pixels-per-foot calibration into one row per catalog item, grouped by section
// @Tags Takeoff
// @Accept json
// @Produce json
// @Param request body models.TakeoffSummaryRequest true "Annotations and calibration"
// @Success 200 {object} models.TakeoffSummaryResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/takeoff_summary [post]
func TakeoffSummary(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TakeoffSummaryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.PixelsPerFoot <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "pixels_per_foot must be positive"})
			return
		}

		resolver, err := loadTakeoffResolver(gdb)
		if err != nil {
			log.Printf("Failed to load catalog for takeoff: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog"})
			return
		}

		items := services.AggregateAnnotations(req.Annotations, req.PixelsPerFoot, resolver)
		for i := range items {
			items[i].Quantity = services.RoundQuantity(items[i].Quantity)
		}

		var total float64
		for _, item := range items {
			total += item.Quantity * item.UnitPrice
		}

		c.JSON(http.StatusOK, models.TakeoffSummaryResponse{
			Success:  true,
			Items:    items,
			Sections: services.GroupBySection(items),
			Total:    total,
		})
	}
}

// TakeoffToQuote godoc
// @Summary Create a draft quote from a takeoff summary
// @Description Converts handed-over takeoff rows into a new draft quote with sections and line items
// @Tags Takeoff
// @Accept json
// @Produce json
// @Param request body models.TakeoffHandoff true "Takeoff summary rows and job info"
// @Success 201 {object} models.QuoteResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/takeoff_to_quote [post]
func TakeoffToQuote(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var handoff models.TakeoffHandoff
		if err := c.ShouldBindJSON(&handoff); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(handoff.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "takeoff handoff has no items"})
			return
		}

		sections, lineItems := services.BuildQuoteDraft(handoff.Items)

		quote, err := repository.CreateQuote(db, handoff, sections, lineItems)
		if err != nil {
			log.Printf("Failed to create quote from takeoff: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quote"})
			return
		}

		c.JSON(http.StatusCreated, models.QuoteResponse{
			Success: true,
			Message: "Quote created from takeoff",
			Data:    &quote,
			Status:  models.QuoteStatusDraft,
		})
	}
}
