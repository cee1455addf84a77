package handlers

import (
	"errors"
	"net/http"

	"estimator/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==================== CATALOG CRUD OPERATIONS ====================

// CreateCatalogItem creates a new catalog item
// @Summary Create catalog item
// @Description Create a new priced catalog item
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body models.CatalogItemGorm true "Catalog item"
// @Success 201 {object} models.CatalogItemResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/catalog_items [post]
func CreateCatalogItem(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.CatalogItemGorm
		if err := c.ShouldBindJSON(&item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if item.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
			return
		}

		var existing models.CatalogItemGorm
		if err := gdb.First(&existing, "id = ?", item.ID).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Catalog item with this id already exists"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if err := gdb.Create(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create catalog item"})
			return
		}

		c.JSON(http.StatusCreated, models.CatalogItemResponse{
			Success: true,
			Message: "Catalog item created successfully",
			Data:    &item,
		})
	}
}

// ListCatalogItems lists catalog items
// @Summary List catalog items
// @Description List catalog items, optionally only those enabled for takeoff
// @Tags Catalog
// @Produce json
// @Param takeoff_only query bool false "Only takeoff-enabled items"
// @Success 200 {object} models.CatalogItemListResponse
// @Router /api/catalog_items [get]
func ListCatalogItems(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := gdb.Order("category_name, subcategory_name, label")
		if c.Query("takeoff_only") == "true" {
			query = query.Where("takeoff_enabled = ?", true)
		}

		var items []models.CatalogItemGorm
		if err := query.Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch catalog items"})
			return
		}

		c.JSON(http.StatusOK, models.CatalogItemListResponse{
			Success: true,
			Message: "Catalog items fetched successfully",
			Data:    items,
		})
	}
}

// GetCatalogItem fetches one catalog item
// @Summary Get catalog item
// @Tags Catalog
// @Produce json
// @Param id path string true "Catalog item ID"
// @Success 200 {object} models.CatalogItemResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/catalog_items/{id} [get]
func GetCatalogItem(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item models.CatalogItemGorm
		err := gdb.First(&item, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog item not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		c.JSON(http.StatusOK, models.CatalogItemResponse{
			Success: true,
			Message: "Catalog item fetched successfully",
			Data:    &item,
		})
	}
}

// UpdateCatalogItem updates a catalog item
// @Summary Update catalog item
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path string true "Catalog item ID"
// @Param request body models.CatalogItemGorm true "Updated catalog item"
// @Success 200 {object} models.CatalogItemResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/catalog_items/{id} [put]
func UpdateCatalogItem(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var item models.CatalogItemGorm
		err := gdb.First(&item, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog item not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		var input models.CatalogItemGorm
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// The route parameter wins over whatever id the body carries.
		input.ID = id
		input.CreatedAt = item.CreatedAt

		if err := gdb.Save(&input).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update catalog item"})
			return
		}

		c.JSON(http.StatusOK, models.CatalogItemResponse{
			Success: true,
			Message: "Catalog item updated successfully",
			Data:    &input,
		})
	}
}

// DeleteCatalogItem soft-deletes a catalog item
// @Summary Delete catalog item
// @Tags Catalog
// @Produce json
// @Param id path string true "Catalog item ID"
// @Success 200 {object} models.CatalogItemResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/catalog_items/{id} [delete]
func DeleteCatalogItem(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := gdb.Delete(&models.CatalogItemGorm{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete catalog item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog item not found"})
			return
		}

		c.JSON(http.StatusOK, models.CatalogItemResponse{
			Success: true,
			Message: "Catalog item deleted successfully",
		})
	}
}
