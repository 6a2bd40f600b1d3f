// Package gifcast converts video clips into looping animated GIFs.
//
// A conversion trims the clip to a maximum duration, downsamples the frame
// rate by skipping frames, and bounds the frame width, trading fidelity for
// a small, embeddable artifact. The run is a single synchronous pass: probe
// the source, stream decoded frames out of ffmpeg, keep every Nth frame,
// shrink the oversized ones, and write the sequence as one GIF.
//
// # Basic Usage
//
//	conv := gifcast.New(gifcast.Options{MaxWidth: 320})
//	res, err := conv.Convert(ctx, "clip.mp4", "clip.gif")
//
// ffmpeg and ffprobe must be available on PATH.
package gifcast

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/vidtools/gifcast/internal/ffmpeg"
	"github.com/vidtools/gifcast/internal/frame"
	"github.com/vidtools/gifcast/internal/gifenc"
	"github.com/vidtools/gifcast/internal/probe"
	"github.com/vidtools/gifcast/internal/sample"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const (
	// UnboundedDuration is the sentinel MaxDuration value meaning "use the
	// full source length"; it and anything above it disable the frame cap.
	UnboundedDuration = 999

	// DefaultSourceFPS is assumed when the source does not report a frame rate.
	DefaultSourceFPS = 30
)

// ErrNoFrames is returned when decoding succeeds but the sampling plan
// retains nothing, e.g. the duration and fps combination skips past the
// entire source.
var ErrNoFrames = errors.New("no frames extracted from video")

// Options configures a Converter. The zero value of each field selects its
// default.
type Options struct {
	// MaxDuration bounds the output length in seconds. Defaults to 10.
	// Values of UnboundedDuration or more keep the full source length.
	MaxDuration int

	// TargetFPS is the output frame rate, approximated by skipping source
	// frames. Defaults to 10.
	TargetFPS int

	// MaxWidth bounds the output frame width in pixels; wider frames are
	// downscaled preserving aspect ratio. Defaults to 500.
	MaxWidth int

	// Logger receives structured diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

func (o Options) validate() error {
	if o.MaxDuration <= 0 {
		return fmt.Errorf("max duration must be positive, got %d", o.MaxDuration)
	}
	if o.TargetFPS <= 0 {
		return fmt.Errorf("target fps must be positive, got %d", o.TargetFPS)
	}
	if o.MaxWidth <= 0 {
		return fmt.Errorf("max width must be positive, got %d", o.MaxWidth)
	}
	return nil
}

// Result reports a completed conversion.
type Result struct {
	Frames int
}

// Converter performs one-shot video to GIF conversions. It holds no state
// between calls; concurrent Convert calls are independent.
type Converter struct {
	opts Options
	log  *zap.Logger
}

// New creates a Converter, filling unset Options with their defaults.
func New(opts Options) *Converter {
	if opts.MaxDuration == 0 {
		opts.MaxDuration = 10
	}
	if opts.TargetFPS == 0 {
		opts.TargetFPS = 10
	}
	if opts.MaxWidth == 0 {
		opts.MaxWidth = 500
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Converter{opts: opts, log: opts.Logger}
}

// Convert reads the video at inputPath and writes a looping GIF to
// outputPath. The output file appears only on success; every frame displays
// for 1000/TargetFPS milliseconds.
func (c *Converter) Convert(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	if err := c.opts.validate(); err != nil {
		return nil, err
	}

	meta, err := probe.Probe(ctx, inputPath)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", inputPath, err)
	}
	if meta.Width <= 0 || meta.Height <= 0 {
		return nil, fmt.Errorf("no video stream in %s", inputPath)
	}

	sourceFPS := meta.FrameRate
	if sourceFPS <= 0 {
		sourceFPS = DefaultSourceFPS
		c.log.Debug("source frame rate unavailable, assuming default",
			zap.Int("fps", DefaultSourceFPS))
	}

	plan := sample.Compute(sourceFPS, c.opts.TargetFPS, c.opts.MaxDuration,
		c.opts.MaxDuration >= UnboundedDuration)
	c.log.Debug("sampling plan",
		zap.Float64("source_fps", sourceFPS),
		zap.Int("stride", plan.Stride),
		zap.Int("max_frames", plan.MaxFrames))

	dec, err := ffmpeg.NewDecoder(ctx, ffmpeg.DecodeParams{
		InputPath:  inputPath,
		Width:      meta.Width,
		Height:     meta.Height,
		FrameLimit: plan.DecodeBudget(),
	})
	if err != nil {
		return nil, fmt.Errorf("start decode: %w", err)
	}
	defer dec.Close()

	var frames []image.Image
	for i := 0; ; i++ {
		img, err := dec.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode frame %d: %w", i, err)
		}
		if !plan.Keep(i) {
			continue
		}
		frames = append(frames, frame.FitWidth(img, c.opts.MaxWidth))
		if plan.MaxFrames > 0 && len(frames) >= plan.MaxFrames {
			break
		}
	}
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}

	if err := gifenc.Encode(outputPath, frames, c.opts.TargetFPS); err != nil {
		return nil, fmt.Errorf("encode gif: %w", err)
	}

	c.log.Info("gif written",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int("frames", len(frames)))
	return &Result{Frames: len(frames)}, nil
}

// Poster extracts the source frame at frameIndex as a still image, bounded
// to MaxWidth like the animated frames. The image format follows the
// posterPath extension.
func (c *Converter) Poster(ctx context.Context, inputPath, posterPath string, frameIndex int) error {
	if frameIndex < 0 {
		return fmt.Errorf("frame index must be non-negative, got %d", frameIndex)
	}

	data, err := ffmpeg.ExtractPoster(ctx, inputPath, frameIndex)
	if err != nil {
		return fmt.Errorf("extract poster frame: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode poster frame: %w", err)
	}

	if err := imaging.Save(frame.FitWidth(img, c.opts.MaxWidth), posterPath); err != nil {
		return fmt.Errorf("save poster: %w", err)
	}

	c.log.Info("poster written",
		zap.String("input", inputPath),
		zap.String("output", posterPath))
	return nil
}
