package video

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"

	"github.com/lepinkainen/thumbgrid/thumbnail"
)

var errCaptureClosed = errors.New("capture is closed")

// FFmpegDecoder opens videos with ffprobe and decodes single frames with ffmpeg
type FFmpegDecoder struct {
	probe func(path string) (*VideoMetadata, error)
	grab  func(path string, seconds float64) ([]byte, error)
}

// NewFFmpegDecoder returns a decoder backed by the ffmpeg and ffprobe binaries on PATH
func NewFFmpegDecoder() *FFmpegDecoder {
	return &FFmpegDecoder{
		probe: GetVideoMetadata,
		grab:  grabFrame,
	}
}

// Open probes the video. It fails when the container cannot be read or has no usable frame rate.
func (d *FFmpegDecoder) Open(path string) (thumbnail.Capture, error) {
	meta, err := d.probe(path)
	if err != nil {
		return nil, err
	}
	if meta.FrameRate <= 0 {
		return nil, fmt.Errorf("unknown frame rate for %s", path)
	}
	return &ffmpegCapture{path: path, meta: meta, grab: d.grab}, nil
}

type ffmpegCapture struct {
	path   string
	meta   *VideoMetadata
	grab   func(path string, seconds float64) ([]byte, error)
	pos    int
	closed bool
}

func (c *ffmpegCapture) FrameCount() int { return c.meta.FrameCount }
func (c *ffmpegCapture) Width() int      { return c.meta.Width }
func (c *ffmpegCapture) Height() int     { return c.meta.Height }

func (c *ffmpegCapture) Seek(frame int) error {
	if c.closed {
		return errCaptureClosed
	}
	if frame < 0 {
		return fmt.Errorf("invalid frame index %d", frame)
	}
	c.pos = frame
	return nil
}

// Read decodes the frame at the current position and advances by one frame
func (c *ffmpegCapture) Read() (image.Image, error) {
	if c.closed {
		return nil, errCaptureClosed
	}

	at := float64(c.pos) / c.meta.FrameRate
	data, err := c.grab(c.path, at)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no frame decoded at index %d (%.3fs)", c.pos, at)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %d: %w", c.pos, err)
	}

	c.pos++
	return img, nil
}

func (c *ffmpegCapture) Close() error {
	c.closed = true
	return nil
}

// grabFrame extracts one frame at the given timestamp as PNG
func grabFrame(path string, seconds float64) ([]byte, error) {
	cmd := exec.Command("ffmpeg",
		"-hide_banner", "-nostdin", "-v", "error",
		"-ss", strconv.FormatFloat(seconds, 'f', 3, 64),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-c:v", "png",
		"-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame grab at %.3fs: %w: %s", seconds, err, extractLastLine(stderr.String()))
	}
	return stdout.Bytes(), nil
}
