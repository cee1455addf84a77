package services

import (
	"estimator/models"
)

// Coordinate mapping between a viewer's current rendering (zoomed and
// possibly rotated pixel space) and canonical page coordinates. Stored
// points are always relative to the page's native dimensions, so an
// annotation captured at 150% zoom with the page rotated still lands in
// the right spot when re-projected at any other transform.

func normalizeRotation(rotation int) int {
	r := rotation % 360
	if r < 0 {
		r += 360
	}
	// Snap to the nearest 90-degree step; viewers only rotate in quarters.
	return (r / 90) * 90
}

// ViewportToScaled converts a point in viewport pixel space into a
// ScaledPoint relative to the page's native dimensions. Always succeeds for
// well-formed numeric input.
func ViewportToScaled(x, y float64, vp models.ViewportTransform) models.ScaledPoint {
	scaledW := vp.PageWidth * vp.Scale
	scaledH := vp.PageHeight * vp.Scale

	// Undo the viewer rotation first, then the zoom.
	var xs, ys float64
	switch normalizeRotation(vp.Rotation) {
	case 90:
		// Display space is scaledH wide and scaledW tall.
		xs = y
		ys = scaledH - x
	case 180:
		xs = scaledW - x
		ys = scaledH - y
	case 270:
		xs = scaledW - y
		ys = x
	default:
		xs = x
		ys = y
	}

	return models.ScaledPoint{
		X1:         xs / vp.Scale,
		Y1:         ys / vp.Scale,
		Width:      vp.PageWidth,
		Height:     vp.PageHeight,
		PageNumber: vp.PageNumber,
	}
}

// ScaledToViewport re-projects a stored ScaledPoint onto a viewer's current
// transform, returning viewport pixel coordinates. The point's own recorded
// page dimensions rescale it when the target page size differs.
func ScaledToViewport(pt models.ScaledPoint, vp models.ViewportTransform) (float64, float64) {
	xs := pt.X1
	ys := pt.Y1
	if pt.Width > 0 && pt.Height > 0 {
		xs = pt.X1 * (vp.PageWidth / pt.Width)
		ys = pt.Y1 * (vp.PageHeight / pt.Height)
	}
	xs *= vp.Scale
	ys *= vp.Scale

	scaledW := vp.PageWidth * vp.Scale
	scaledH := vp.PageHeight * vp.Scale

	switch normalizeRotation(vp.Rotation) {
	case 90:
		return scaledH - ys, xs
	case 180:
		return scaledW - xs, scaledH - ys
	case 270:
		return ys, scaledW - xs
	default:
		return xs, ys
	}
}
