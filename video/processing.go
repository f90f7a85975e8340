package video

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/lepinkainen/thumbgrid/thumbnail"
)

// ProcessOptions configures a processing run
type ProcessOptions struct {
	Convert *ConvertOptions
	Sample  thumbnail.SampleOptions
	Grid    thumbnail.GridOptions
	Quality int  // JPEG quality of the thumbnails
	DryRun  bool // Log planned actions without touching any file
}

// DefaultProcessOptions returns the standard conversion and thumbnail settings
func DefaultProcessOptions() ProcessOptions {
	return ProcessOptions{
		Convert: DefaultConvertOptions(),
		Sample:  thumbnail.DefaultSampleOptions(),
		Grid:    thumbnail.DefaultGridOptions(),
		Quality: thumbnail.DefaultQuality,
	}
}

// Processor runs the clean, rename, convert and thumbnail pipeline one file at a time
type Processor struct {
	opts       ProcessOptions
	log        zerolog.Logger
	transcoder *Transcoder
	decoder    thumbnail.Decoder
	remove     func(string) error
	rename     func(oldPath, newPath string) error
	exists     func(string) bool
}

// NewProcessor creates a processor using ffmpeg for conversion and frame decoding
func NewProcessor(opts ProcessOptions, log zerolog.Logger) *Processor {
	if opts.Convert == nil {
		opts.Convert = DefaultConvertOptions()
	}
	return &Processor{
		opts:       opts,
		log:        log,
		transcoder: NewTranscoder(opts.Convert),
		decoder:    NewFFmpegDecoder(),
		remove:     os.Remove,
		rename:     os.Rename,
		exists:     fileExists,
	}
}

// Run processes every file under root and returns the aggregated statistics
func (p *Processor) Run(root string) (*RunStats, error) {
	files, err := FindFiles(root)
	if err != nil {
		return nil, err
	}
	return p.ProcessAll(files, nil), nil
}

// ProcessAll processes files in order. A failing file never stops the run;
// observe, when set, is called after each file.
func (p *Processor) ProcessAll(files []string, observe func(FileResult)) *RunStats {
	stats := &RunStats{}
	for _, f := range files {
		result := p.ProcessFile(f)
		stats.Add(result)
		if observe != nil {
			observe(result)
		}
	}
	return stats
}

// ProcessFile handles the processing of a single file
func (p *Processor) ProcessFile(path string) FileResult {
	result := FileResult{Path: path}
	log := p.log.With().Str("file", path).Logger()

	switch Classify(path) {
	case ClassStalePreview:
		return p.removeStalePreview(path, result, log)
	case ClassImage:
		log.Debug().Msg("skipping image")
		return result
	case ClassOther:
		log.Debug().Msg("not a video file, skipping")
		return result
	}

	prefix, ext := SplitPrefix(path)
	normalized := prefix + "." + ext
	if normalized != path {
		if err := p.normalizeName(path, normalized, log); err != nil {
			return failed(result, err, log)
		}
	}

	videoPath, converted, err := p.convert(prefix, ext, log)
	result.VideoPath = videoPath
	result.Converted = converted
	if err != nil {
		return failed(result, err, log)
	}

	result.ThumbPath = ThumbPath(videoPath)
	return p.generateThumbnail(result, log)
}

func (p *Processor) removeStalePreview(path string, result FileResult, log zerolog.Logger) FileResult {
	result.Outcome = OutcomeCleaned
	if p.opts.DryRun {
		log.Info().Msg("would remove stale preview")
		return result
	}
	if err := p.remove(path); err != nil {
		return failed(result, fmt.Errorf("failed to remove stale preview: %w", err), log)
	}
	log.Info().Msg("removed stale preview")
	return result
}

func (p *Processor) normalizeName(path, normalized string, log zerolog.Logger) error {
	if p.exists(normalized) {
		return fmt.Errorf("cannot rename to %s: %w", normalized, os.ErrExist)
	}
	if p.opts.DryRun {
		log.Info().Str("to", normalized).Msg("would rename")
		return nil
	}
	if err := p.rename(path, normalized); err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}
	log.Info().Str("to", normalized).Msg("renamed")
	return nil
}

func (p *Processor) convert(prefix, ext string, log zerolog.Logger) (string, bool, error) {
	if p.opts.DryRun {
		output, needed := p.transcoder.Plan(prefix, ext)
		if needed {
			log.Info().Str("output", output).Msg("would convert")
		}
		return output, false, nil
	}

	if !p.transcoder.IsTarget(ext) {
		log.Info().Str("target", p.opts.Convert.TargetExt).Msg("converting")
	}
	res := p.transcoder.Convert(prefix, ext)
	if res.Error != nil {
		return res.OutputPath, false, res.Error
	}
	if res.WasConverted {
		log.Info().
			Str("output", res.OutputPath).
			Int64("source_bytes", res.SourceSize).
			Int64("output_bytes", res.OutputSize).
			Msg("converted, original removed")
	} else if res.SkipReason != "" {
		log.Debug().Str("reason", res.SkipReason).Msg("no conversion needed")
	}
	return res.OutputPath, res.WasConverted, nil
}

func (p *Processor) generateThumbnail(result FileResult, log zerolog.Logger) FileResult {
	if p.exists(result.ThumbPath) {
		log.Debug().Str("thumbnail", result.ThumbPath).Msg("thumbnail exists")
		result.Outcome = OutcomeExisting
		return result
	}

	if p.opts.DryRun {
		log.Info().Str("thumbnail", result.ThumbPath).Msg("would generate thumbnail")
		result.Outcome = OutcomeThumbnail
		return result
	}

	samples := thumbnail.Sample(p.decoder, result.VideoPath, p.opts.Sample, log)
	result.Frames = len(samples.Frames)
	if result.Frames == 0 {
		log.Warn().Msg("no frames were captured, skipping thumbnail")
		result.Outcome = OutcomeNoFrames
		return result
	}

	grid, err := thumbnail.Compose(samples.Frames, p.opts.Grid)
	if err != nil {
		return failed(result, err, log)
	}

	if err := thumbnail.WriteJPEG(result.ThumbPath, grid, p.opts.Quality); err != nil {
		if errors.Is(err, os.ErrExist) {
			result.Outcome = OutcomeExisting
			return result
		}
		return failed(result, err, log)
	}

	b := grid.Bounds()
	log.Info().
		Str("thumbnail", result.ThumbPath).
		Int("frames", result.Frames).
		Int("width", b.Dx()).
		Int("height", b.Dy()).
		Msg("thumbnail saved")
	result.Outcome = OutcomeThumbnail
	return result
}

func failed(result FileResult, err error, log zerolog.Logger) FileResult {
	log.Error().Err(err).Msg("processing failed")
	result.Outcome = OutcomeFailed
	result.Error = err
	return result
}
