package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strings"
)

// Decoder streams decoded frames out of a running ffmpeg process.
type Decoder struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	errBuf *bytes.Buffer

	width  int
	height int
	buf    []byte
	waited bool
}

// NewDecoder starts ffmpeg decoding p.InputPath into packed RGBA frames of
// p.Width by p.Height. The caller must Close the decoder, which also covers
// stopping ffmpeg early once enough frames have been read.
func NewDecoder(ctx context.Context, p DecodeParams) (*Decoder, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions %dx%d", p.Width, p.Height)
	}

	args := append(prolog(), DecodeArgs(p)...)
	cmd := exec.CommandContext(ctx, ffmpegBin, args...)

	errBuf := &bytes.Buffer{}
	cmd.Stderr = errBuf

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("pipe ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	return &Decoder{
		cmd:    cmd,
		stdout: stdout,
		errBuf: errBuf,
		width:  p.Width,
		height: p.Height,
		buf:    make([]byte, p.Width*p.Height*4),
	}, nil
}

// Next returns the next decoded frame, or io.EOF once the stream is
// exhausted. A non-zero ffmpeg exit surfaces as an error carrying its
// stderr output.
func (d *Decoder) Next() (*image.RGBA, error) {
	img, err := readFrame(d.stdout, d.width, d.height, d.buf)
	if err == nil {
		return img, nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		d.waited = true
		if werr := d.cmd.Wait(); werr != nil {
			return nil, fmt.Errorf("ffmpeg: %w: %s", werr, strings.TrimSpace(d.errBuf.String()))
		}
		return nil, io.EOF
	}
	return nil, fmt.Errorf("read frame: %w", err)
}

// Close releases the process. If the stream was not fully drained the
// process is killed, which is how a conversion stops decoding once its
// frame cap is reached.
func (d *Decoder) Close() error {
	if d.waited {
		return nil
	}
	d.waited = true
	if d.cmd.Process != nil {
		d.cmd.Process.Kill()
	}
	d.cmd.Wait()
	return nil
}

// readFrame fills one packed RGBA frame from r. buf must hold
// width*height*4 bytes.
func readFrame(r io.Reader, width, height int, buf []byte) (*image.RGBA, error) {
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, buf)
	return img, nil
}
