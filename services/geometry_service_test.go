package services

import (
	"testing"

	"estimator/models"

	"github.com/stretchr/testify/assert"
)

func pt(x, y float64) models.ScaledPoint {
	return models.ScaledPoint{X1: x, Y1: y, Width: 612, Height: 792, PageNumber: 1}
}

func TestPolylineLength(t *testing.T) {
	points := []models.ScaledPoint{pt(0, 0), pt(3, 0), pt(3, 4)}
	assert.InDelta(t, 7.0, PolylineLength(points), 1e-9)
}

func TestPolylineLengthDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, PolylineLength(nil))
	assert.Equal(t, 0.0, PolylineLength([]models.ScaledPoint{pt(5, 5)}))
}

func TestPolygonAreaSquare(t *testing.T) {
	square := []models.ScaledPoint{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)}
	assert.InDelta(t, 100.0, PolygonArea(square), 1e-9)
}

func TestPolygonAreaWindingOrder(t *testing.T) {
	cw := []models.ScaledPoint{pt(0, 0), pt(0, 10), pt(10, 10), pt(10, 0)}
	ccw := []models.ScaledPoint{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)}
	assert.InDelta(t, PolygonArea(ccw), PolygonArea(cw), 1e-9)
}

func TestPolygonAreaDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, PolygonArea([]models.ScaledPoint{pt(0, 0), pt(10, 10)}))
	// Duplicate points enclose nothing.
	assert.Equal(t, 0.0, PolygonArea([]models.ScaledPoint{pt(5, 5), pt(5, 5), pt(5, 5)}))
}

func TestPolygonPerimeter(t *testing.T) {
	square := []models.ScaledPoint{pt(0, 0), pt(10, 0), pt(10, 10), pt(0, 10)}
	assert.InDelta(t, 40.0, PolygonPerimeter(square), 1e-9)
	assert.Equal(t, 0.0, PolygonPerimeter([]models.ScaledPoint{pt(0, 0), pt(1, 1)}))
}

func TestUnitConversions(t *testing.T) {
	assert.InDelta(t, 10.0, PixelsToFeet(100, 10), 1e-9)
	assert.InDelta(t, 1.0, PixelsToSquareFeet(100, 10), 1e-9)
}

func TestFormatMeasurement(t *testing.T) {
	assert.Equal(t, "246 LF", FormatMeasurement(245.5, "LF", 0))
	assert.Equal(t, "245.50 LF", FormatMeasurement(245.5, "LF", 2))
}
