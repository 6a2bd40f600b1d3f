// Package frame bounds frame dimensions for encoding.
package frame

import (
	"image"

	"github.com/disintegration/imaging"
)

// FitWidth bounds img to maxWidth pixels, preserving aspect ratio with
// Lanczos resampling. Frames at or under the bound are returned unchanged.
func FitWidth(img image.Image, maxWidth int) image.Image {
	if img.Bounds().Dx() <= maxWidth {
		return img
	}
	return imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
}
