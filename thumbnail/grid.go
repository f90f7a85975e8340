// Package thumbnail samples frames from videos and composes them into grid previews.
package thumbnail

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"github.com/nfnt/resize"
)

// ErrNoFrames is returned when a grid is requested for an empty frame list
var ErrNoFrames = errors.New("no frames to compose")

// GridOptions describes the thumbnail grid geometry
type GridOptions struct {
	Columns    int // Cells per row
	CellWidth  int // Width of one cell in pixels
	CellHeight int // Height of one cell in pixels
}

// DefaultGridOptions returns a five column grid of 100x100 cells
func DefaultGridOptions() GridOptions {
	return GridOptions{
		Columns:    5,
		CellWidth:  100,
		CellHeight: 100,
	}
}

// Validate checks that the geometry can produce a non-empty canvas
func (o GridOptions) Validate() error {
	if o.Columns <= 0 {
		return fmt.Errorf("columns must be positive, got %d", o.Columns)
	}
	if o.CellWidth <= 0 || o.CellHeight <= 0 {
		return fmt.Errorf("cell size must be positive, got %dx%d", o.CellWidth, o.CellHeight)
	}
	return nil
}

// Rows returns the number of grid rows needed for n frames
func (o GridOptions) Rows(n int) int {
	return (n + o.Columns - 1) / o.Columns
}

// CanvasSize returns the pixel dimensions of a grid holding n frames
func (o GridOptions) CanvasSize(n int) (width, height int) {
	return o.Columns * o.CellWidth, o.Rows(n) * o.CellHeight
}

// CellRect returns the canvas rectangle of the i-th frame in row-major order
func (o GridOptions) CellRect(i int) image.Rectangle {
	x := (i % o.Columns) * o.CellWidth
	y := (i / o.Columns) * o.CellHeight
	return image.Rect(x, y, x+o.CellWidth, y+o.CellHeight)
}

// Compose stretches every frame to the cell size and tiles them into a single image.
// Cells past the last frame are left black.
func Compose(frames []image.Image, opts GridOptions) (*image.RGBA, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	w, h := opts.CanvasSize(len(frames))
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))

	for i, frame := range frames {
		if frame == nil {
			return nil, fmt.Errorf("frame %d is nil", i)
		}
		cell := resize.Resize(uint(opts.CellWidth), uint(opts.CellHeight), frame, resize.Bilinear)
		draw.Draw(canvas, opts.CellRect(i), cell, cell.Bounds().Min, draw.Src)
	}

	return canvas, nil
}
