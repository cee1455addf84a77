package services

import (
	"fmt"
	"math"

	"estimator/models"
)

// PolylineLength returns the length of a polyline in page pixels by summing
// the Euclidean distance between consecutive points. Fewer than 2 points
// measure zero.
func PolylineLength(points []models.ScaledPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(points); i++ {
		dx := points[i].X1 - points[i-1].X1
		dy := points[i].Y1 - points[i-1].Y1
		total += math.Sqrt(dx*dx + dy*dy)
	}
	return total
}

// PolygonArea returns the area of a polygon in page pixels squared using the
// shoelace formula. The last point connects back to the first. Winding order
// does not affect the result. Fewer than 3 points measure zero.
func PolygonArea(points []models.ScaledPoint) float64 {
	if len(points) < 3 {
		return 0
	}
	var area float64
	for i := 0; i < len(points); i++ {
		curr := points[i]
		next := points[(i+1)%len(points)]
		area += curr.X1*next.Y1 - next.X1*curr.Y1
	}
	return math.Abs(area) / 2
}

// PolygonPerimeter returns the perimeter of a closed polygon in page pixels.
func PolygonPerimeter(points []models.ScaledPoint) float64 {
	if len(points) < 3 {
		return 0
	}
	closed := make([]models.ScaledPoint, 0, len(points)+1)
	closed = append(closed, points...)
	closed = append(closed, points[0])
	return PolylineLength(closed)
}

// PixelsToFeet converts a pixel distance to real-world feet using the plan's
// calibration factor.
func PixelsToFeet(pixels, pixelsPerFoot float64) float64 {
	return pixels / pixelsPerFoot
}

// PixelsToSquareFeet converts a pixel area to real-world square feet.
func PixelsToSquareFeet(pixelsSquared, pixelsPerFoot float64) float64 {
	return pixelsSquared / (pixelsPerFoot * pixelsPerFoot)
}

// FormatMeasurement renders a measured value with its unit, e.g. "245.5 LF".
func FormatMeasurement(value float64, unit string, decimals int) string {
	if decimals > 0 {
		return fmt.Sprintf("%.*f %s", decimals, value, unit)
	}
	return fmt.Sprintf("%d %s", int(math.Round(value)), unit)
}
