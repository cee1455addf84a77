package models

import (
	"time"

	"gorm.io/gorm"
)

// CatalogItemGorm represents the catalog_items table with GORM tags
type CatalogItemGorm struct {
	ID              string         `gorm:"primaryKey;column:id" json:"id" example:"silt_fence"`
	Code            string         `gorm:"column:code;not null" json:"code" example:"SF-100"`
	Label           string         `gorm:"column:label;not null" json:"label" example:"Silt Fence"`
	Description     string         `gorm:"column:description" json:"description" example:"Install silt fence per plan"`
	Unit            string         `gorm:"column:unit;not null" json:"unit" example:"LF"`
	UnitPrice       float64        `gorm:"column:unit_price;not null" json:"unit_price" example:"3.25"`
	UnitCost        float64        `gorm:"column:unit_cost;not null" json:"unit_cost" example:"2.28"`
	Color           string         `gorm:"column:color" json:"color" example:"#d97706"`
	MeasureType     string         `gorm:"column:measure_type;not null" json:"measure_type" example:"linear"`
	CategoryName    string         `gorm:"column:category_name;not null" json:"category_name" example:"Erosion Control"`
	SubcategoryName string         `gorm:"column:subcategory_name" json:"subcategory_name,omitempty" example:"Perimeter Control"`
	TakeoffEnabled  bool           `gorm:"column:takeoff_enabled;not null;default:true" json:"takeoff_enabled" example:"true"`
	CreatedAt       time.Time      `gorm:"column:created_at;not null" json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;not null" json:"updated_at" example:"2024-01-15T10:30:00Z"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for CatalogItemGorm
func (CatalogItemGorm) TableName() string {
	return "catalog_items"
}

// CatalogEntry is the pricing/classification metadata a takeoff item id
// resolves to. Immutable once loaded.
type CatalogEntry struct {
	CatalogCode string  `json:"catalog_code" example:"SF-100"`
	Name        string  `json:"name" example:"Silt Fence"`
	Description string  `json:"description" example:"Install silt fence per plan"`
	Unit        string  `json:"unit" example:"LF"`
	UnitPrice   float64 `json:"unit_price" example:"3.25"`
	UnitCost    float64 `json:"unit_cost" example:"2.28"`
	SectionName string  `json:"section_name" example:"Erosion Control"`
}

// CatalogItemResponse represents the response for catalog item operations
type CatalogItemResponse struct {
	Success bool             `json:"success" example:"true"`
	Message string           `json:"message" example:"Success"`
	Data    *CatalogItemGorm `json:"data,omitempty"`
	Error   string           `json:"error,omitempty" example:""`
}

// CatalogItemListResponse represents the response for catalog item list operations
type CatalogItemListResponse struct {
	Success bool              `json:"success" example:"true"`
	Message string            `json:"message" example:"Success"`
	Data    []CatalogItemGorm `json:"data,omitempty"`
	Error   string            `json:"error,omitempty" example:""`
}
