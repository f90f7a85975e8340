package video

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoVideoStream is returned when a container has no video stream
var ErrNoVideoStream = errors.New("no video stream found")

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecName    string `json:"codec_name"`
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		RFrameRate   string `json:"r_frame_rate"`
		Duration     string `json:"duration"`
		NbFrames     string `json:"nb_frames"`
	} `json:"streams"`
}

// GetVideoMetadata reads frame count, frame rate and dimensions of the first video stream using ffprobe
func GetVideoMetadata(videoFile string) (*VideoMetadata, error) {
	cmd := exec.Command("ffprobe", "-v", "error",
		"-select_streams", "v:0",
		"-print_format", "json",
		"-show_format", "-show_streams",
		"--", videoFile)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("ffprobe %s: %w: %s", videoFile, err, extractFirstLine(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("ffprobe %s: %w", videoFile, err)
	}

	return ParseProbeJSON(output)
}

// ParseProbeJSON converts ffprobe JSON output into VideoMetadata.
// The frame count falls back to duration times frame rate for containers
// that do not store it, such as Matroska.
func ParseProbeJSON(data []byte) (*VideoMetadata, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	for _, s := range raw.Streams {
		if s.CodecType != "" && s.CodecType != "video" {
			continue
		}

		meta := &VideoMetadata{
			Codec:     s.CodecName,
			Width:     s.Width,
			Height:    s.Height,
			FrameRate: parseRate(s.AvgFrameRate),
		}
		if meta.FrameRate == 0 {
			meta.FrameRate = parseRate(s.RFrameRate)
		}

		meta.Duration = parseFloat(s.Duration)
		if meta.Duration == 0 {
			meta.Duration = parseFloat(raw.Format.Duration)
		}

		if n, err := strconv.Atoi(strings.TrimSpace(s.NbFrames)); err == nil && n > 0 {
			meta.FrameCount = n
		} else {
			meta.FrameCount = int(math.Round(meta.Duration * meta.FrameRate))
		}

		return meta, nil
	}

	return nil, ErrNoVideoStream
}

// parseRate parses ffprobe rationals like "30000/1001"; invalid or 0/0 rates yield 0
func parseRate(rate string) float64 {
	num, den, ok := strings.Cut(strings.TrimSpace(rate), "/")
	if !ok {
		return parseFloat(num)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// GetFileSize returns the size of a file in bytes
func GetFileSize(filePath string) (int64, error) {
	fi, err := os.Stat(filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to get file size: %w", err)
	}
	return fi.Size(), nil
}

// extractFirstLine extracts just the first line from a multi-line string
func extractFirstLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		return strings.TrimSpace(lines[0])
	}
	return "no additional information available"
}

// extractLastLine returns the last non-empty line, where ffmpeg puts the fatal error
func extractLastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return "no additional information available"
}
