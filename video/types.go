package video

// VideoMetadata contains the container properties needed for frame sampling
type VideoMetadata struct {
	Codec      string
	Width      int
	Height     int
	FrameRate  float64 // Frames per second
	Duration   float64 // Seconds
	FrameCount int
}

// Outcome is the final state of one file after a processing pass
type Outcome int

const (
	OutcomeSkipped   Outcome = iota // Not a video, left untouched
	OutcomeCleaned                  // Stale preview deleted
	OutcomeThumbnail                // Thumbnail written
	OutcomeExisting                 // Thumbnail already present
	OutcomeNoFrames                 // No frames could be captured
	OutcomeFailed                   // Per-file error, see FileResult.Error
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCleaned:
		return "cleaned"
	case OutcomeThumbnail:
		return "thumbnail"
	case OutcomeExisting:
		return "existing"
	case OutcomeNoFrames:
		return "no frames"
	case OutcomeFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// FileResult contains the result of processing a single file
type FileResult struct {
	Path      string // Path as found by the walker
	VideoPath string // Final video path after renaming and conversion
	ThumbPath string
	Converted bool
	Frames    int
	Outcome   Outcome
	Error     error
}

// RunStats tracks statistics over a processing run
type RunStats struct {
	Files      int
	Converted  int
	Thumbnails int
	Existing   int
	Cleaned    int
	Skipped    int
	NoFrames   int
	Failed     int
}

// Add records one file result
func (s *RunStats) Add(r FileResult) {
	s.Files++
	if r.Converted {
		s.Converted++
	}
	switch r.Outcome {
	case OutcomeThumbnail:
		s.Thumbnails++
	case OutcomeExisting:
		s.Existing++
	case OutcomeCleaned:
		s.Cleaned++
	case OutcomeNoFrames:
		s.NoFrames++
	case OutcomeFailed:
		s.Failed++
	default:
		s.Skipped++
	}
}
