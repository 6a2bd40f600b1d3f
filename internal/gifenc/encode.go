// Package gifenc writes frame sequences as looping animated GIFs.
package gifenc

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/google/uuid"
)

// Encode writes frames to path as an infinitely looping GIF. Every frame
// displays for 1000/targetFPS milliseconds. Frames are quantized one at a
// time with Floyd-Steinberg dithering onto the Plan9 palette; no cross-frame
// optimization pass is applied, trading file size for write speed.
//
// The output appears atomically: frames are encoded into a uniquely named
// temp file beside path and renamed into place, so no partial artifact
// survives a failed run.
func Encode(path string, frames []image.Image, targetFPS int) error {
	if len(frames) == 0 {
		return errors.New("no frames to encode")
	}
	if targetFPS <= 0 {
		return fmt.Errorf("target fps must be positive, got %d", targetFPS)
	}

	// gif delays are in 100ths of a second
	delay := (1000 / targetFPS) / 10

	anim := &gif.GIF{LoopCount: 0}
	for _, src := range frames {
		b := src.Bounds()
		dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
		draw.FloydSteinberg.Draw(dst, dst.Bounds(), src, b.Min)
		anim.Image = append(anim.Image, dst)
		anim.Delay = append(anim.Delay, delay)
	}

	tmp := path + ".tmp-" + uuid.NewString()
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode gif: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename gif into place: %w", err)
	}
	return nil
}
