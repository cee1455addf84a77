package services

import (
	"log"
	"math"

	"estimator/models"

	"github.com/google/uuid"
)

// Units forced onto measured annotations regardless of catalog unit.
const (
	UnitLinearFeet = "LF"
	UnitSquareFeet = "SF"
)

// DefaultCostMargin is the fallback cost-to-price ratio applied when a
// free-form line item supplies a flat cost but no explicit unit cost.
const DefaultCostMargin = 0.7

// AggregateAnnotations turns raw annotations plus a calibration factor into
// one summary row per distinct item id. Count marks contribute 1 each,
// polylines contribute their length in feet (unit forced to LF), polygons
// their area in square feet (unit forced to SF). Annotations whose item id
// is not in the catalog are skipped. Rows whose accumulated quantity is not
// strictly positive are dropped, so degenerate geometry never reaches the
// quote. Output order is first-seen item id order.
func AggregateAnnotations(annotations []models.Annotation, pixelsPerFoot float64, resolver *CatalogResolver) []models.TakeoffSummaryItem {
	summaries := make(map[string]*models.TakeoffSummaryItem)
	var order []string

	for _, ann := range annotations {
		entry, ok := resolver.Resolve(ann.ItemID)
		if !ok {
			log.Printf("takeoff: skipping annotation with unknown item id %q", ann.ItemID)
			continue
		}

		var quantity float64
		unit := entry.Unit
		switch ann.Type {
		case models.AnnotationCount:
			quantity = 1
		case models.AnnotationPolyline:
			quantity = PixelsToFeet(PolylineLength(ann.Points), pixelsPerFoot)
			unit = UnitLinearFeet
		case models.AnnotationPolygon:
			quantity = PixelsToSquareFeet(PolygonArea(ann.Points), pixelsPerFoot)
			unit = UnitSquareFeet
		default:
			log.Printf("takeoff: skipping annotation with unknown type %q", ann.Type)
			continue
		}

		if existing, seen := summaries[ann.ItemID]; seen {
			existing.Quantity += quantity
			continue
		}

		label := ann.Label
		if label == "" {
			label = entry.Name
		}
		summaries[ann.ItemID] = &models.TakeoffSummaryItem{
			ItemID:      ann.ItemID,
			Label:       label,
			Quantity:    quantity,
			Unit:        unit,
			CatalogCode: entry.CatalogCode,
			Name:        entry.Name,
			Description: entry.Description,
			UnitPrice:   entry.UnitPrice,
			UnitCost:    entry.UnitCost,
			SectionName: entry.SectionName,
		}
		order = append(order, ann.ItemID)
	}

	result := make([]models.TakeoffSummaryItem, 0, len(order))
	for _, itemID := range order {
		item := summaries[itemID]
		if item.Quantity <= 0 {
			log.Printf("takeoff: dropping zero-quantity item %q (degenerate geometry)", itemID)
			continue
		}
		result = append(result, *item)
	}
	return result
}

// GroupBySection partitions summary rows into named sections, preserving
// first-seen order for both sections and the items within them.
func GroupBySection(items []models.TakeoffSummaryItem) []models.TakeoffSection {
	index := make(map[string]int)
	var sections []models.TakeoffSection

	for _, item := range items {
		i, ok := index[item.SectionName]
		if !ok {
			i = len(sections)
			index[item.SectionName] = i
			sections = append(sections, models.TakeoffSection{Name: item.SectionName})
		}
		sections[i].Items = append(sections[i].Items, item)
	}
	return sections
}

// RoundQuantity rounds a measured quantity to 2 decimal places, ties away
// from zero.
func RoundQuantity(quantity float64) float64 {
	return math.Round(quantity*100) / 100
}

// BuildQuoteDraft maps summary rows into quote sections and line items ready
// for persistence. Sections are created in first-seen order; each line item
// gets the id of its section and a sort order within it.
func BuildQuoteDraft(items []models.TakeoffSummaryItem) ([]models.QuoteSection, []models.QuoteLineItem) {
	sectionIDs := make(map[string]string)
	var sections []models.QuoteSection
	var lineItems []models.QuoteLineItem
	perSection := make(map[string]int)

	for _, item := range items {
		sectionID, ok := sectionIDs[item.SectionName]
		if !ok {
			sectionID = uuid.NewString()
			sectionIDs[item.SectionName] = sectionID
			sections = append(sections, models.QuoteSection{
				ID:        sectionID,
				Name:      item.SectionName,
				SortOrder: len(sections),
			})
		}

		sid := sectionID
		lineItems = append(lineItems, models.QuoteLineItem{
			ID:          uuid.NewString(),
			SectionID:   &sid,
			Description: item.Name,
			Quantity:    RoundQuantity(item.Quantity),
			Unit:        item.Unit,
			UnitCost:    item.UnitCost,
			UnitPrice:   item.UnitPrice,
			IsExcluded:  false,
			Notes:       item.Description,
			SortOrder:   perSection[sectionID],
		})
		perSection[sectionID]++
	}
	return sections, lineItems
}

// LineItemFromManualInput builds a line item from a free-form entry. When
// the input carries only a flat cost, the unit price is the cost and the
// unit cost defaults to cost times the margin. Explicit unit economics are
// used as given.
func LineItemFromManualInput(input models.ManualLineItemInput, costMargin float64) models.QuoteLineItem {
	if costMargin <= 0 || costMargin > 1 {
		costMargin = DefaultCostMargin
	}

	unitPrice := input.Cost
	unitCost := input.Cost * costMargin
	if input.UnitPrice != nil {
		unitPrice = *input.UnitPrice
	}
	if input.UnitCost != nil {
		unitCost = *input.UnitCost
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	return models.QuoteLineItem{
		ID:          uuid.NewString(),
		Description: input.Description,
		Quantity:    RoundQuantity(quantity),
		Unit:        input.Unit,
		UnitCost:    unitCost,
		UnitPrice:   unitPrice,
		Notes:       input.Notes,
	}
}
