package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lepinkainen/thumbgrid/thumbnail"
	"github.com/lepinkainen/thumbgrid/types"
	"github.com/lepinkainen/thumbgrid/ui"
	"github.com/lepinkainen/thumbgrid/utils"
	"github.com/lepinkainen/thumbgrid/video"
)

// ErrNotDirectory is returned when the processed path exists but is not a directory
var ErrNotDirectory = errors.New("not a directory")

// ProcessCmd cleans up a video directory, converts every video to a single container
// and writes a frame grid thumbnail next to each one.
type ProcessCmd struct {
	Path       string `arg:"" name:"path" help:"Directory to process recursively" type:"path"`
	Frames     int    `help:"Frames sampled per video" default:"20"`
	Columns    int    `help:"Thumbnail grid columns" default:"5"`
	CellWidth  int    `help:"Width of one grid cell in pixels" default:"100"`
	CellHeight int    `help:"Height of one grid cell in pixels" default:"100"`
	Quality    int    `help:"JPEG quality of the thumbnails (1-100)" default:"95"`
	TargetExt  string `help:"Container extension every video is converted to" default:"mp4"`
	VideoCodec string `help:"ffmpeg video encoder used for conversions" default:"libx264"`
	AudioCodec string `help:"ffmpeg audio encoder used for conversions" default:"aac"`
	DryRun     bool   `help:"Show what would be done without touching any file"`
	NoProgress bool   `help:"Disable the progress bar"`
}

// Validate is called by kong after parsing
func (cmd *ProcessCmd) Validate() error {
	if cmd.Frames < 1 {
		return fmt.Errorf("--frames must be at least 1, got %d", cmd.Frames)
	}
	if cmd.Quality < 1 || cmd.Quality > 100 {
		return fmt.Errorf("--quality must be between 1 and 100, got %d", cmd.Quality)
	}
	if cmd.TargetExt == "" || strings.ContainsAny(cmd.TargetExt, "./\\") {
		return fmt.Errorf("--target-ext must be a bare extension such as mp4, got %q", cmd.TargetExt)
	}
	return cmd.options().Grid.Validate()
}

func (cmd *ProcessCmd) options() video.ProcessOptions {
	return video.ProcessOptions{
		Convert: &video.ConvertOptions{
			TargetExt:  cmd.TargetExt,
			VideoCodec: cmd.VideoCodec,
			AudioCodec: cmd.AudioCodec,
		},
		Sample: thumbnail.SampleOptions{Frames: cmd.Frames},
		Grid: thumbnail.GridOptions{
			Columns:    cmd.Columns,
			CellWidth:  cmd.CellWidth,
			CellHeight: cmd.CellHeight,
		},
		Quality: cmd.Quality,
		DryRun:  cmd.DryRun,
	}
}

func (cmd *ProcessCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	log := zerolog.Nop()
	if appCtx != nil {
		version = appCtx.Version
		log = appCtx.Logger
	}

	fi, err := os.Stat(cmd.Path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", cmd.Path, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s: %w", cmd.Path, ErrNotDirectory)
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("Thumbgrid %s", version)))

	// Missing tools turn into per-file failures; the run itself still completes
	if err := utils.ValidateFFmpegDependencies(); err != nil && !cmd.DryRun {
		log.Warn().Err(err).Msg("video files will fail to process")
	}

	files, err := video.FindFiles(cmd.Path)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", cmd.Path, err)
	}

	if cmd.DryRun {
		fmt.Println(ui.ProcessingStyle.Render("🔍 DRY RUN MODE - No files will be modified"))
	}
	fmt.Println(ui.ProcessingStyle.Render(fmt.Sprintf("🎬 Processing %d files in %s", len(files), cmd.Path)))

	processor := video.NewProcessor(cmd.options(), log)
	bar := ui.NewProgress(len(files), "Processing", !cmd.NoProgress)

	stats := processor.ProcessAll(files, func(r video.FileResult) {
		if err := bar.Add(1); err != nil {
			log.Debug().Err(err).Msg("progress bar")
		}
	})
	_ = bar.Finish()

	printSummary(stats, cmd.DryRun)
	return nil
}

// printSummary displays final statistics
func printSummary(stats *video.RunStats, dryRun bool) {
	title := "📊 Summary"
	if dryRun {
		title = "📊 Summary (dry run)"
	}
	fmt.Printf("\n%s\n", ui.HeaderStyle.Render(title))
	fmt.Println(ui.Row("Files", stats.Files, ui.InfoStyle))
	fmt.Println(ui.Row("Converted", stats.Converted, ui.InfoStyle))
	fmt.Println(ui.Row("Thumbnails", stats.Thumbnails, ui.SuccessStyle))
	fmt.Println(ui.Row("Existing", stats.Existing, ui.InfoStyle))
	fmt.Println(ui.Row("Cleaned", stats.Cleaned, ui.InfoStyle))
	fmt.Println(ui.Row("Skipped", stats.Skipped, ui.InfoStyle))
	if stats.NoFrames > 0 {
		fmt.Println(ui.Row("No frames", stats.NoFrames, ui.WarnStyle))
	}
	if stats.Failed > 0 {
		fmt.Println(ui.Row("Failed", stats.Failed, ui.ErrorStyle))
		fmt.Printf("\n%s\n", ui.WarnStyle.Render("⚠️  Some files failed, see the log above"))
		return
	}

	fmt.Printf("\n%s\n", ui.SuccessStyle.Render("✅ Processing complete."))
}
