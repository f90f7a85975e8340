package video

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ConvertOptions holds configuration for format normalization
type ConvertOptions struct {
	TargetExt  string // Container extension every video is normalized to
	VideoCodec string // ffmpeg video encoder
	AudioCodec string // ffmpeg audio encoder
}

// DefaultConvertOptions returns H.264/AAC in MP4
func DefaultConvertOptions() *ConvertOptions {
	return &ConvertOptions{
		TargetExt:  "mp4",
		VideoCodec: "libx264",
		AudioCodec: "aac",
	}
}

// ConvertResult holds the results of a conversion attempt
type ConvertResult struct {
	SourcePath   string
	OutputPath   string // Path the caller should continue with; may not exist when Error is set
	SourceSize   int64
	OutputSize   int64
	WasConverted bool
	WasSkipped   bool
	SkipReason   string
	Error        error
}

// commandRunner runs an external command and returns its stderr
type commandRunner func(name string, args ...string) (string, error)

func runCommand(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

// Transcoder normalizes videos to a single container and codec pair using ffmpeg
type Transcoder struct {
	opts   *ConvertOptions
	run    commandRunner
	remove func(string) error
	exists func(string) bool
}

// NewTranscoder creates a transcoder; nil options select DefaultConvertOptions
func NewTranscoder(opts *ConvertOptions) *Transcoder {
	if opts == nil {
		opts = DefaultConvertOptions()
	}
	return &Transcoder{
		opts:   opts,
		run:    runCommand,
		remove: os.Remove,
		exists: fileExists,
	}
}

// IsTarget reports whether ext already denotes the target container
func (t *Transcoder) IsTarget(ext string) bool {
	return strings.EqualFold(ext, t.opts.TargetExt)
}

// Plan returns the path a video with the given prefix and extension ends up at,
// and whether running Convert would invoke ffmpeg.
func (t *Transcoder) Plan(prefix, ext string) (output string, needed bool) {
	if t.IsTarget(ext) {
		return prefix + "." + ext, false
	}
	output = ConvertedPath(prefix, ext, t.opts.TargetExt)
	return output, !t.exists(output)
}

// Args builds the ffmpeg argument list for converting src into dst
func (t *Transcoder) Args(src, dst string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-i", src,
		"-vcodec", t.opts.VideoCodec,
		"-acodec", t.opts.AudioCodec,
		dst,
	}
}

// Convert re-encodes <prefix>.<ext> into the target format. The source is deleted only
// after ffmpeg exits successfully. An existing conversion output is reused as is.
func (t *Transcoder) Convert(prefix, ext string) *ConvertResult {
	src := prefix + "." + ext
	result := &ConvertResult{SourcePath: src}

	output, needed := t.Plan(prefix, ext)
	result.OutputPath = output
	if !needed {
		result.WasSkipped = true
		if t.IsTarget(ext) {
			result.SkipReason = "already " + t.opts.TargetExt
		} else {
			result.SkipReason = "already converted"
		}
		return result
	}

	if size, err := GetFileSize(src); err == nil {
		result.SourceSize = size
	} else {
		result.Error = err
		return result
	}

	stderr, err := t.run("ffmpeg", t.Args(src, output)...)
	if err != nil {
		// A partial output would be mistaken for a finished conversion on the next run
		_ = t.remove(output)
		result.Error = fmt.Errorf("failed to convert %s: %w: %s", src, err, extractLastLine(stderr))
		return result
	}

	if size, err := GetFileSize(output); err == nil {
		result.OutputSize = size
	} else {
		result.Error = fmt.Errorf("conversion produced no output: %w", err)
		return result
	}

	if err := t.remove(src); err != nil {
		result.Error = fmt.Errorf("converted but failed to remove original: %w", err)
		return result
	}

	result.WasConverted = true
	return result
}

// fileExists checks if a file exists at the given path
func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
