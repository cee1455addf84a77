package models

// Annotation types supported by the takeoff tools.
const (
	AnnotationCount    = "count"
	AnnotationPolyline = "polyline"
	AnnotationPolygon  = "polygon"
)

// ScaledPoint is a point expressed relative to a page's native (unrotated,
// unzoomed) dimensions. It is safe to store and re-project onto a viewer
// using a different zoom or rotation.
type ScaledPoint struct {
	X1         float64 `json:"x1" example:"120.5"`
	Y1         float64 `json:"y1" example:"240.25"`
	Width      float64 `json:"width" example:"612"`
	Height     float64 `json:"height" example:"792"`
	PageNumber int     `json:"page_number" example:"1"`
}

// ViewportTransform describes how a viewer is currently rendering a page:
// native page dimensions, zoom scale and rotation (0, 90, 180 or 270 degrees).
type ViewportTransform struct {
	PageWidth  float64 `json:"page_width" example:"612"`
	PageHeight float64 `json:"page_height" example:"792"`
	Scale      float64 `json:"scale" example:"1.5"`
	Rotation   int     `json:"rotation" example:"0"`
	PageNumber int     `json:"page_number" example:"1"`
}

// Annotation is one user-drawn measurement on a plan page: a count mark,
// a polyline (linear measurement) or a polygon (area measurement).
type Annotation struct {
	ID     string        `json:"id,omitempty" example:"a1b2c3"`
	Type   string        `json:"type" binding:"required" example:"polyline"`
	ItemID string        `json:"item_id" binding:"required" example:"silt_fence"`
	Label  string        `json:"label,omitempty" example:"Silt Fence"`
	Points []ScaledPoint `json:"points,omitempty"`
}

// TakeoffSummaryItem is one aggregated row per distinct takeoff item id.
type TakeoffSummaryItem struct {
	ItemID      string  `json:"item_id" example:"silt_fence"`
	Label       string  `json:"label" example:"Silt Fence"`
	Quantity    float64 `json:"quantity" example:"245.5"`
	Unit        string  `json:"unit" example:"LF"`
	CatalogCode string  `json:"catalog_code" example:"SF-100"`
	Name        string  `json:"name" example:"Silt Fence"`
	Description string  `json:"description" example:"Install silt fence per plan"`
	UnitPrice   float64 `json:"unit_price" example:"3.25"`
	UnitCost    float64 `json:"unit_cost" example:"2.28"`
	SectionName string  `json:"section_name" example:"Erosion Control"`
}

// TakeoffSummaryRequest is the payload for the takeoff aggregation endpoint.
type TakeoffSummaryRequest struct {
	Annotations   []Annotation `json:"annotations" binding:"required"`
	PixelsPerFoot float64      `json:"pixels_per_foot" binding:"required" example:"10"`
}

// TakeoffSection is one named group of summary rows, in first-seen order.
type TakeoffSection struct {
	Name  string               `json:"name" example:"Erosion Control"`
	Items []TakeoffSummaryItem `json:"items"`
}

// TakeoffSummaryResponse is the response for the takeoff aggregation endpoint.
type TakeoffSummaryResponse struct {
	Success  bool                 `json:"success" example:"true"`
	Items    []TakeoffSummaryItem `json:"items"`
	Sections []TakeoffSection     `json:"sections"`
	Total    float64              `json:"total" example:"12450.75"`
}

// TakeoffHandoff is the explicit payload that carries takeoff results into
// quote creation. Nothing about the takeoff lives in ambient state; the
// caller hands the summary rows and job info over in one request.
type TakeoffHandoff struct {
	Items       []TakeoffSummaryItem `json:"items" binding:"required"`
	JobName     string               `json:"job_name" example:"Desert Ridge Phase 2"`
	JobAddress  string               `json:"job_address" example:"4242 E Cactus Rd, Phoenix AZ"`
	ClientName  string               `json:"client_name" example:"Sonoran Builders"`
	ClientEmail string               `json:"client_email" example:"bids@sonoranbuilders.com"`
	ClientPhone string               `json:"client_phone" example:"602-555-0142"`
	Notes       string               `json:"notes,omitempty" example:"Per plan set dated 06/14"`
}
