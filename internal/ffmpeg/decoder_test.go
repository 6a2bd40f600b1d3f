package ffmpeg

import (
	"bytes"
	"image/color"
	"io"
	"testing"
)

func TestReadFrame_FillsRGBAPixels(t *testing.T) {
	// two 2x1 frames: red+green, then blue+white
	raw := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 255,
	}
	r := bytes.NewReader(raw)
	buf := make([]byte, 2*1*4)

	first, err := readFrame(r, 2, 1, buf)
	if err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if got := first.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("first frame pixel (0,0) = %v", got)
	}
	if got := first.RGBAAt(1, 0); got != (color.RGBA{G: 255, A: 255}) {
		t.Fatalf("first frame pixel (1,0) = %v", got)
	}

	second, err := readFrame(r, 2, 1, buf)
	if err != nil {
		t.Fatalf("second frame: %v", err)
	}
	if got := second.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Fatalf("second frame pixel (0,0) = %v", got)
	}

	// reusing buf must not alias earlier frames
	if got := first.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("first frame mutated after buffer reuse: %v", got)
	}

	if _, err := readFrame(r, 2, 1, buf); err != io.EOF {
		t.Fatalf("expected EOF after last frame, got %v", err)
	}
}

func TestReadFrame_TruncatedStream(t *testing.T) {
	r := bytes.NewReader(make([]byte, 5))
	buf := make([]byte, 2*1*4)

	if _, err := readFrame(r, 2, 1, buf); err != io.ErrUnexpectedEOF {
		t.Fatalf("expected unexpected EOF for partial frame, got %v", err)
	}
}
