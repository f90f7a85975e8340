package video

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

func pngFrame(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestFFmpegDecoder_SeekAndRead(t *testing.T) {
	frame := pngFrame(t, 32, 24)
	var requested []float64

	dec := &FFmpegDecoder{
		probe: func(string) (*VideoMetadata, error) {
			return &VideoMetadata{Width: 32, Height: 24, FrameRate: 25, FrameCount: 250}, nil
		},
		grab: func(path string, seconds float64) ([]byte, error) {
			requested = append(requested, seconds)
			return frame, nil
		},
	}

	capture, err := dec.Open("clip.mp4")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer capture.Close()

	if capture.FrameCount() != 250 || capture.Width() != 32 || capture.Height() != 24 {
		t.Errorf("Unexpected capture properties: %d frames, %dx%d",
			capture.FrameCount(), capture.Width(), capture.Height())
	}

	if err := capture.Seek(50); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}
	img, err := capture.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 24 {
		t.Errorf("Unexpected frame size %v", img.Bounds())
	}

	// Read advances to the next frame
	if _, err := capture.Read(); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	expected := []float64{2.0, 51.0 / 25.0}
	if len(requested) != len(expected) {
		t.Fatalf("Expected %d grabs, got %d", len(expected), len(requested))
	}
	for i := range expected {
		if math.Abs(requested[i]-expected[i]) > 1e-9 {
			t.Errorf("Grab %d at %fs, expected %fs", i, requested[i], expected[i])
		}
	}
}

func TestFFmpegDecoder_OpenErrors(t *testing.T) {
	probeErr := errors.New("moov atom not found")
	dec := &FFmpegDecoder{
		probe: func(string) (*VideoMetadata, error) { return nil, probeErr },
	}
	if _, err := dec.Open("broken.mp4"); !errors.Is(err, probeErr) {
		t.Errorf("Expected probe error, got %v", err)
	}

	dec.probe = func(string) (*VideoMetadata, error) {
		return &VideoMetadata{Width: 10, Height: 10, FrameCount: 100}, nil
	}
	if _, err := dec.Open("norate.mp4"); err == nil {
		t.Error("Expected error for missing frame rate")
	}
}

func TestFFmpegDecoder_ReadFailures(t *testing.T) {
	meta := &VideoMetadata{Width: 8, Height: 8, FrameRate: 30, FrameCount: 90}

	tests := []struct {
		name string
		grab func(string, float64) ([]byte, error)
	}{
		{"ffmpeg error", func(string, float64) ([]byte, error) { return nil, errors.New("exit status 1") }},
		{"past the end", func(string, float64) ([]byte, error) { return nil, nil }},
		{"garbage output", func(string, float64) ([]byte, error) { return []byte("not a png"), nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := &FFmpegDecoder{
				probe: func(string) (*VideoMetadata, error) { return meta, nil },
				grab:  tt.grab,
			}
			capture, err := dec.Open("clip.mp4")
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if _, err := capture.Read(); err == nil {
				t.Error("Expected Read() error")
			}
		})
	}
}

func TestFFmpegDecoder_Closed(t *testing.T) {
	dec := &FFmpegDecoder{
		probe: func(string) (*VideoMetadata, error) {
			return &VideoMetadata{FrameRate: 30, FrameCount: 30}, nil
		},
		grab: func(string, float64) ([]byte, error) { return pngFrame(t, 4, 4), nil },
	}

	capture, err := dec.Open("clip.mp4")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := capture.Seek(-1); err == nil {
		t.Error("Expected error for negative frame index")
	}
	if err := capture.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := capture.Read(); !errors.Is(err, errCaptureClosed) {
		t.Errorf("Expected errCaptureClosed, got %v", err)
	}
	if err := capture.Seek(0); !errors.Is(err, errCaptureClosed) {
		t.Errorf("Expected errCaptureClosed from Seek, got %v", err)
	}
}
