package ffmpeg

import (
	"strings"
	"testing"
)

func TestDecodeArgs_RawRGBAOverPipe(t *testing.T) {
	args := DecodeArgs(DecodeParams{
		InputPath:  "clip.mp4",
		Width:      640,
		Height:     360,
		FrameLimit: 148,
	})

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-i clip.mp4",
		"-f rawvideo",
		"-pix_fmt rgba",
		"-map 0:v:0",
		"-vframes 148",
		"pipe:",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in args: %s", want, joined)
		}
	}
}

func TestDecodeArgs_UnboundedOmitsFrameLimit(t *testing.T) {
	args := DecodeArgs(DecodeParams{
		InputPath: "clip.mp4",
		Width:     640,
		Height:    360,
	})

	joined := strings.Join(args, " ")
	if strings.Contains(joined, "-vframes") {
		t.Fatalf("unbounded decode should not limit frames: %s", joined)
	}
}

func TestPosterArgs_SelectsSingleFrame(t *testing.T) {
	args := PosterArgs("clip.mp4", 42)

	// ffmpeg-go escapes commas inside filter arguments
	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-i clip.mp4",
		`select=gte(n\,42)`,
		"-vframes 1",
		"-vcodec mjpeg",
		"pipe:",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in args: %s", want, joined)
		}
	}
}
