// Package ffmpeg builds and runs the ffmpeg invocations behind a
// conversion: a raw-frame decode pipe and single-frame poster extraction.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	ffmpeggo "github.com/u2takey/ffmpeg-go"
)

const ffmpegBin = "ffmpeg"

// DecodeParams describes a raw-frame decode of the first video stream.
type DecodeParams struct {
	InputPath string
	Width     int
	Height    int

	// FrameLimit bounds how many frames ffmpeg decodes; 0 means the full
	// source.
	FrameLimit int
}

// DecodeArgs builds the argument list for streaming the first video stream
// as packed RGBA frames over stdout.
func DecodeArgs(p DecodeParams) []string {
	out := ffmpeggo.KwArgs{
		"map":     "0:v:0",
		"format":  "rawvideo",
		"pix_fmt": "rgba",
	}
	if p.FrameLimit > 0 {
		out["vframes"] = p.FrameLimit
	}

	return ffmpeggo.Input(p.InputPath).
		Output("pipe:", out).
		GetArgs()
}

// PosterArgs builds the argument list for extracting the frame at
// frameIndex as a single MJPEG image over stdout.
func PosterArgs(inputPath string, frameIndex int) []string {
	return ffmpeggo.Input(inputPath).
		Filter("select", ffmpeggo.Args{fmt.Sprintf("gte(n,%d)", frameIndex)}).
		Output("pipe:", ffmpeggo.KwArgs{"vframes": 1, "format": "image2", "vcodec": "mjpeg"}).
		GetArgs()
}

// prolog returns the flags prepended to every invocation.
func prolog() []string {
	return []string{"-nostats", "-hide_banner", "-loglevel", "error"}
}

// ExtractPoster runs the poster command and returns the encoded image bytes.
func ExtractPoster(ctx context.Context, inputPath string, frameIndex int) ([]byte, error) {
	args := append(prolog(), PosterArgs(inputPath, frameIndex)...)
	cmd := exec.CommandContext(ctx, ffmpegBin, args...)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(errBuf.String()))
	}
	if out.Len() == 0 {
		return nil, errors.New("no poster frame produced")
	}
	return out.Bytes(), nil
}
