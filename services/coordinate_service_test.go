package services

import (
	"testing"

	"estimator/models"

	"github.com/stretchr/testify/assert"
)

func transform(scale float64, rotation int) models.ViewportTransform {
	return models.ViewportTransform{
		PageWidth:  612,
		PageHeight: 792,
		Scale:      scale,
		Rotation:   rotation,
		PageNumber: 1,
	}
}

func TestViewportToScaledIdentity(t *testing.T) {
	scaled := ViewportToScaled(100, 200, transform(1, 0))
	assert.InDelta(t, 100.0, scaled.X1, 1e-9)
	assert.InDelta(t, 200.0, scaled.Y1, 1e-9)
	assert.Equal(t, 612.0, scaled.Width)
	assert.Equal(t, 792.0, scaled.Height)
	assert.Equal(t, 1, scaled.PageNumber)
}

func TestViewportToScaledUndoesZoom(t *testing.T) {
	// Same physical point captured at two zoom levels must store identically.
	at100 := ViewportToScaled(100, 200, transform(1, 0))
	at150 := ViewportToScaled(150, 300, transform(1.5, 0))
	assert.InDelta(t, at100.X1, at150.X1, 1e-9)
	assert.InDelta(t, at100.Y1, at150.Y1, 1e-9)
}

func TestScaledRoundTripAllRotations(t *testing.T) {
	for _, rotation := range []int{0, 90, 180, 270} {
		vp := transform(1.25, rotation)
		scaled := ViewportToScaled(140.5, 388.25, vp)
		x, y := ScaledToViewport(scaled, vp)
		assert.InDelta(t, 140.5, x, 1e-9, "rotation %d", rotation)
		assert.InDelta(t, 388.25, y, 1e-9, "rotation %d", rotation)
	}
}

func TestScaledReprojectsAcrossTransforms(t *testing.T) {
	// Captured at 100% unrotated, re-projected at 200%: pixel coords double.
	scaled := ViewportToScaled(50, 75, transform(1, 0))
	x, y := ScaledToViewport(scaled, transform(2, 0))
	assert.InDelta(t, 100.0, x, 1e-9)
	assert.InDelta(t, 150.0, y, 1e-9)
}

func TestNormalizeRotation(t *testing.T) {
	assert.Equal(t, 90, normalizeRotation(450))
	assert.Equal(t, 270, normalizeRotation(-90))
	assert.Equal(t, 0, normalizeRotation(360))
}
