package services

import (
	"testing"

	"estimator/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *CatalogResolver {
	return NewCatalogResolverFromEntries(map[string]models.CatalogEntry{
		"curb_inlet": {
			CatalogCode: "CI-10", Name: "Curb Inlet Protection", Description: "Gravel bag inlet protection",
			Unit: "EA", UnitPrice: 85, UnitCost: 60, SectionName: "Inlet Protection",
		},
		"silt_fence": {
			CatalogCode: "SF-100", Name: "Silt Fence", Description: "Install silt fence per plan",
			Unit: "EA", UnitPrice: 3.25, UnitCost: 2.28, SectionName: "Erosion Control",
		},
		"hydroseed": {
			CatalogCode: "HS-20", Name: "Hydroseed", Description: "Hydroseed disturbed areas",
			Unit: "EA", UnitPrice: 0.18, UnitCost: 0.11, SectionName: "Stabilization",
		},
	})
}

func TestAggregateCountsAccumulate(t *testing.T) {
	annotations := []models.Annotation{
		{Type: models.AnnotationCount, ItemID: "curb_inlet"},
		{Type: models.AnnotationCount, ItemID: "curb_inlet"},
	}

	items := AggregateAnnotations(annotations, 10, testResolver())
	require.Len(t, items, 1)
	assert.Equal(t, "curb_inlet", items[0].ItemID)
	assert.Equal(t, 2.0, items[0].Quantity)
	assert.Equal(t, "EA", items[0].Unit)
}

func TestAggregatePolylineForcesLinearFeet(t *testing.T) {
	annotations := []models.Annotation{
		{Type: models.AnnotationPolyline, ItemID: "silt_fence", Points: []models.ScaledPoint{pt(0, 0), pt(30, 0), pt(30, 40)}},
	}

	items := AggregateAnnotations(annotations, 10, testResolver())
	require.Len(t, items, 1)
	// 70 px at 10 px/ft = 7 LF, catalog unit EA overridden.
	assert.InDelta(t, 7.0, items[0].Quantity, 1e-9)
	assert.Equal(t, "LF", items[0].Unit)
}

func TestAggregatePolygonForcesSquareFeet(t *testing.T) {
	annotations := []models.Annotation{
		{Type: models.AnnotationPolygon, ItemID: "hydroseed", Points: []models.ScaledPoint{pt(0, 0), pt(100, 0), pt(100, 100), pt(0, 100)}},
	}

	items := AggregateAnnotations(annotations, 10, testResolver())
	require.Len(t, items, 1)
	assert.InDelta(t, 100.0, items[0].Quantity, 1e-9)
	assert.Equal(t, "SF", items[0].Unit)
}

func TestAggregateSkipsUnknownItems(t *testing.T) {
	annotations := []models.Annotation{
		{Type: models.AnnotationCount, ItemID: "not_in_catalog"},
		{Type: models.AnnotationCount, ItemID: "curb_inlet"},
	}

	items := AggregateAnnotations(annotations, 10, testResolver())
	require.Len(t, items, 1)
	assert.Equal(t, "curb_inlet", items[0].ItemID)
}

func TestAggregateDropsDegenerateGeometry(t *testing.T) {
	// A 2-point polygon measures zero area at any calibration.
	for _, ppf := range []float64{1, 10, 96.5} {
		annotations := []models.Annotation{
			{Type: models.AnnotationPolygon, ItemID: "hydroseed", Points: []models.ScaledPoint{pt(0, 0), pt(10, 10)}},
		}
		items := AggregateAnnotations(annotations, ppf, testResolver())
		assert.Empty(t, items)
	}
}

func TestAggregateFirstSeenOrder(t *testing.T) {
	annotations := []models.Annotation{
		{Type: models.AnnotationCount, ItemID: "silt_fence"},
		{Type: models.AnnotationCount, ItemID: "curb_inlet"},
		{Type: models.AnnotationCount, ItemID: "silt_fence"},
	}

	items := AggregateAnnotations(annotations, 10, testResolver())
	require.Len(t, items, 2)
	assert.Equal(t, "silt_fence", items[0].ItemID)
	assert.Equal(t, 2.0, items[0].Quantity)
	assert.Equal(t, "curb_inlet", items[1].ItemID)
}

func TestGroupBySectionPreservesOrder(t *testing.T) {
	items := []models.TakeoffSummaryItem{
		{ItemID: "a", SectionName: "Erosion Control"},
		{ItemID: "b", SectionName: "Inlet Protection"},
		{ItemID: "c", SectionName: "Erosion Control"},
	}

	sections := GroupBySection(items)
	require.Len(t, sections, 2)
	assert.Equal(t, "Erosion Control", sections[0].Name)
	assert.Len(t, sections[0].Items, 2)
	assert.Equal(t, "Inlet Protection", sections[1].Name)
	assert.Len(t, sections[1].Items, 1)
}

func TestRoundQuantity(t *testing.T) {
	assert.Equal(t, 245.57, RoundQuantity(245.567))
	assert.Equal(t, 1.0, RoundQuantity(0.999))
	assert.Equal(t, -2.35, RoundQuantity(-2.346))
}

func TestBuildQuoteDraft(t *testing.T) {
	items := []models.TakeoffSummaryItem{
		{ItemID: "silt_fence", Name: "Silt Fence", Quantity: 245.567, Unit: "LF", UnitPrice: 3.25, UnitCost: 2.28, Description: "Install silt fence per plan", SectionName: "Erosion Control"},
		{ItemID: "curb_inlet", Name: "Curb Inlet Protection", Quantity: 4, Unit: "EA", UnitPrice: 85, UnitCost: 60, SectionName: "Inlet Protection"},
		{ItemID: "fiber_roll", Name: "Fiber Roll", Quantity: 80, Unit: "LF", UnitPrice: 2.1, UnitCost: 1.4, SectionName: "Erosion Control"},
	}

	sections, lineItems := BuildQuoteDraft(items)
	require.Len(t, sections, 2)
	require.Len(t, lineItems, 3)

	assert.Equal(t, "Erosion Control", sections[0].Name)
	assert.Equal(t, 0, sections[0].SortOrder)
	assert.Equal(t, "Inlet Protection", sections[1].Name)

	assert.Equal(t, 245.57, lineItems[0].Quantity)
	assert.Equal(t, "Install silt fence per plan", lineItems[0].Notes)
	assert.False(t, lineItems[0].IsExcluded)

	require.NotNil(t, lineItems[0].SectionID)
	require.NotNil(t, lineItems[2].SectionID)
	assert.Equal(t, sections[0].ID, *lineItems[0].SectionID)
	assert.Equal(t, sections[1].ID, *lineItems[1].SectionID)
	assert.Equal(t, sections[0].ID, *lineItems[2].SectionID)

	// Sort order counts within each section, not globally.
	assert.Equal(t, 0, lineItems[0].SortOrder)
	assert.Equal(t, 0, lineItems[1].SortOrder)
	assert.Equal(t, 1, lineItems[2].SortOrder)
}

func TestLineItemFromManualInputDefaultsMargin(t *testing.T) {
	li := LineItemFromManualInput(models.ManualLineItemInput{
		Description: "Mobilization",
		Cost:        1500,
		Unit:        "EA",
	}, DefaultCostMargin)

	assert.Equal(t, 1500.0, li.UnitPrice)
	assert.InDelta(t, 1050.0, li.UnitCost, 1e-9)
	assert.Equal(t, 1.0, li.Quantity)
}

func TestLineItemFromManualInputExplicitEconomics(t *testing.T) {
	unitCost := 900.0
	unitPrice := 1400.0
	li := LineItemFromManualInput(models.ManualLineItemInput{
		Description: "Mobilization",
		Cost:        1500,
		UnitCost:    &unitCost,
		UnitPrice:   &unitPrice,
	}, DefaultCostMargin)

	assert.Equal(t, 1400.0, li.UnitPrice)
	assert.Equal(t, 900.0, li.UnitCost)
}
