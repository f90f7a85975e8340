package thumbnail

import (
	"image"

	"github.com/rs/zerolog"
)

const (
	// DefaultFrames is the number of frames sampled per video
	DefaultFrames = 20

	// sampleSpan is the leading fraction of the video that samples are spread over
	sampleSpan = 0.95

	// seekOffset skips the first few frames of every sampling interval
	seekOffset = 4
)

// Decoder opens videos for frame-accurate reading
type Decoder interface {
	Open(path string) (Capture, error)
}

// Capture is an opened video. Seek positions the next Read at an absolute frame index.
type Capture interface {
	FrameCount() int
	Width() int
	Height() int
	Seek(frame int) error
	Read() (image.Image, error)
	Close() error
}

// SampleOptions controls frame sampling
type SampleOptions struct {
	Frames int // Number of frames to sample
}

// DefaultSampleOptions returns the standard 20-frame sampling
func DefaultSampleOptions() SampleOptions {
	return SampleOptions{Frames: DefaultFrames}
}

// Samples holds the frames captured from one video together with its source dimensions
type Samples struct {
	Frames []image.Image
	Width  int
	Height int
}

// Interval returns the frame spacing between consecutive samples.
// It is zero when the video has fewer usable frames than samples requested.
func Interval(totalFrames, n int) int {
	if n <= 0 || totalFrames <= 0 {
		return 0
	}
	return int(sampleSpan*float64(totalFrames)) / n
}

// SeekPositions returns the absolute frame indexes visited when sampling n frames
func SeekPositions(totalFrames, n int) []int {
	interval := Interval(totalFrames, n)
	positions := make([]int, 0, max(n, 0))
	for i := 0; i < n; i++ {
		positions = append(positions, i*interval+seekOffset)
	}
	return positions
}

// Sample captures up to opts.Frames evenly spaced frames from the video at path.
// A video that cannot be opened yields no frames and 0x0 dimensions. Sampling stops
// at the first frame that fails to decode; the frames gathered so far are returned.
func Sample(dec Decoder, path string, opts SampleOptions, log zerolog.Logger) Samples {
	capture, err := dec.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("video", path).Msg("could not open video")
		return Samples{}
	}
	defer func() {
		if err := capture.Close(); err != nil {
			log.Debug().Err(err).Str("video", path).Msg("closing capture")
		}
	}()

	samples := Samples{
		Width:  capture.Width(),
		Height: capture.Height(),
	}

	total := capture.FrameCount()
	for _, pos := range SeekPositions(total, opts.Frames) {
		if err := capture.Seek(pos); err != nil {
			log.Warn().Err(err).Int("frame", pos).Msg("could not seek, stopping early")
			break
		}
		frame, err := capture.Read()
		if err != nil {
			log.Warn().Err(err).Int("frame", pos).Msg("could not read frame, stopping early")
			break
		}
		samples.Frames = append(samples.Frames, frame)
	}

	log.Debug().
		Int("total_frames", total).
		Int("interval", Interval(total, opts.Frames)).
		Int("captured", len(samples.Frames)).
		Msg("sampled frames")

	return samples
}
