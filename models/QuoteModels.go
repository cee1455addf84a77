package models

import (
	"time"
)

// Quote lifecycle statuses.
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusLocked   = "locked"
	QuoteStatusAmended  = "amended"
	QuoteStatusArchived = "archived"
)

// Change record types.
const (
	ChangeAdded    = "added"
	ChangeRemoved  = "removed"
	ChangeModified = "modified"
)

// QuoteLineItem is one priced row within a quote.
type QuoteLineItem struct {
	ID          string  `json:"id" example:"7f3a2c1e"`
	SectionID   *string `json:"section_id" example:"b2e9d4a7"`
	Description string  `json:"description" example:"Silt Fence"`
	Quantity    float64 `json:"quantity" example:"245.5"`
	Unit        string  `json:"unit" example:"LF"`
	UnitCost    float64 `json:"unit_cost" example:"2.28"`
	UnitPrice   float64 `json:"unit_price" example:"3.25"`
	IsExcluded  bool    `json:"is_excluded" example:"false"`
	Notes       string  `json:"notes" example:"Install silt fence per plan"`
	SortOrder   int     `json:"sort_order" example:"0"`
}

// Total returns the extended price for the line. Excluded lines price to zero.
func (li QuoteLineItem) Total() float64 {
	if li.IsExcluded {
		return 0
	}
	return li.Quantity * li.UnitPrice
}

// QuoteSection is a named group of line items. Ownership is by SectionID
// reference on the line item, not containment.
type QuoteSection struct {
	ID        string `json:"id" example:"b2e9d4a7"`
	Name      string `json:"name" example:"Erosion Control"`
	SortOrder int    `json:"sort_order" example:"0"`
}

// Quote is the editable document a single editing session works on.
type Quote struct {
	ID          string          `json:"id" example:"3c9f1b2d"`
	BaseNumber  string          `json:"base_number" example:"24061401"`
	JobName     string          `json:"job_name" example:"Desert Ridge Phase 2"`
	JobAddress  string          `json:"job_address" example:"4242 E Cactus Rd, Phoenix AZ"`
	ClientName  string          `json:"client_name" example:"Sonoran Builders"`
	ClientEmail string          `json:"client_email" example:"bids@sonoranbuilders.com"`
	ClientPhone string          `json:"client_phone" example:"602-555-0142"`
	Notes       string          `json:"notes" example:"Per plan set dated 06/14"`
	Sections    []QuoteSection  `json:"sections"`
	LineItems   []QuoteLineItem `json:"line_items"`
}

// Total sums the extended prices of all non-excluded line items.
func (q Quote) Total() float64 {
	var total float64
	for _, li := range q.LineItems {
		total += li.Total()
	}
	return total
}

// ChangeRecord is one field-level delta between an amendment's starting
// snapshot and its current or finalized state.
type ChangeRecord struct {
	Type          string      `json:"type" example:"modified"`
	LineItemID    string      `json:"line_item_id" example:"7f3a2c1e"`
	Field         string      `json:"field,omitempty" example:"quantity"`
	PreviousValue interface{} `json:"previous_value,omitempty"`
	NewValue      interface{} `json:"new_value,omitempty"`
	Timestamp     time.Time   `json:"timestamp" example:"2024-06-14T10:30:00Z"`
}

// QuoteVersion is an immutable numbered snapshot of a quote, created when
// the quote is locked or an amendment is finalized.
type QuoteVersion struct {
	VersionNumber int            `json:"version_number" example:"1"`
	Status        string         `json:"status" example:"locked"`
	CreatedAt     time.Time      `json:"created_at" example:"2024-06-14T10:30:00Z"`
	LockedAt      *time.Time     `json:"locked_at,omitempty" example:"2024-06-14T10:30:00Z"`
	Snapshot      Quote          `json:"snapshot"`
	Changes       []ChangeRecord `json:"changes,omitempty"`
}

// QuoteRecord mirrors the quote table row.
type QuoteRecord struct {
	ID          string    `json:"id" db:"id"`
	BaseNumber  string    `json:"base_number" db:"base_number"`
	JobName     string    `json:"job_name" db:"job_name"`
	JobAddress  string    `json:"job_address" db:"job_address"`
	ClientName  string    `json:"client_name" db:"client_name"`
	ClientEmail string    `json:"client_email" db:"client_email"`
	ClientPhone string    `json:"client_phone" db:"client_phone"`
	Notes       string    `json:"notes" db:"notes"`
	Status      string    `json:"status" db:"status"`
	IsLocked    bool      `json:"is_locked" db:"is_locked"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// QuoteVersionRecord mirrors the quote_version table row. Exactly one
// version per quote has IsCurrent set.
type QuoteVersionRecord struct {
	ID            string    `json:"id" db:"id"`
	QuoteID       string    `json:"quote_id" db:"quote_id"`
	VersionNumber int       `json:"version_number" db:"version_number"`
	Total         float64   `json:"total" db:"total"`
	IsCurrent     bool      `json:"is_current" db:"is_current"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// QuoteResponse represents the response for single quote operations
type QuoteResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Success"`
	Data    *Quote `json:"data,omitempty"`
	Status  string `json:"status,omitempty" example:"draft"`
	Error   string `json:"error,omitempty" example:""`
}

// QuoteListResponse represents the response for quote list operations
type QuoteListResponse struct {
	Success bool          `json:"success" example:"true"`
	Message string        `json:"message" example:"Success"`
	Data    []QuoteRecord `json:"data,omitempty"`
	Error   string        `json:"error,omitempty" example:""`
}

// QuoteVersionListResponse represents the response for version listing
type QuoteVersionListResponse struct {
	Success bool                 `json:"success" example:"true"`
	Message string               `json:"message" example:"Success"`
	Data    []QuoteVersionRecord `json:"data,omitempty"`
	Error   string               `json:"error,omitempty" example:""`
}

// ChangeListResponse represents the response for change record listing
type ChangeListResponse struct {
	Success bool           `json:"success" example:"true"`
	Message string         `json:"message" example:"Success"`
	Data    []ChangeRecord `json:"data,omitempty"`
	Error   string         `json:"error,omitempty" example:""`
}

// ManualLineItemInput is a free-form line item entry. When only Cost is
// supplied the builder derives unit economics from it.
type ManualLineItemInput struct {
	Description string   `json:"description" binding:"required" example:"Mobilization"`
	Quantity    float64  `json:"quantity" example:"1"`
	Unit        string   `json:"unit" example:"EA"`
	Cost        float64  `json:"cost" example:"1500"`
	UnitCost    *float64 `json:"unit_cost,omitempty" example:"1050"`
	UnitPrice   *float64 `json:"unit_price,omitempty" example:"1500"`
	Notes       string   `json:"notes,omitempty" example:""`
}

// ErrorResponse is a generic error envelope
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"something went wrong"`
}
