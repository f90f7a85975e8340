package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lepinkainen/thumbgrid/thumbnail"
	"github.com/lepinkainen/thumbgrid/types"
	"github.com/lepinkainen/thumbgrid/ui"
	"github.com/lepinkainen/thumbgrid/video"
)

// SimilarCmd finds visually similar videos by comparing perceptual hashes of their
// grid thumbnails. Run process first so every video has a thumbnail.
type SimilarCmd struct {
	Directory string `arg:"" name:"directory" help:"Directory to scan for thumbnails" type:"existingdir" default:"."`
	Threshold int    `help:"Hamming distance threshold for similarity (0-64)" default:"10"`
}

func (cmd *SimilarCmd) Validate() error {
	if cmd.Threshold < 0 || cmd.Threshold > thumbnail.MaxDistance {
		return fmt.Errorf("--threshold must be between 0 and %d, got %d", thumbnail.MaxDistance, cmd.Threshold)
	}
	return nil
}

func (cmd *SimilarCmd) Run(appCtx *types.AppContext) error {
	log := zerolog.Nop()
	if appCtx != nil {
		log = appCtx.Logger
	}

	thumbs, err := video.FindThumbnails(cmd.Directory)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", cmd.Directory, err)
	}

	if len(thumbs) < 2 {
		fmt.Printf("%s\n", ui.InfoStyle.Render(fmt.Sprintf("Found %d thumbnails, need at least 2 to compare", len(thumbs))))
		return nil
	}

	fmt.Printf("%s\n", ui.InfoStyle.Render(fmt.Sprintf("Calculating perceptual hashes for %d thumbnails...", len(thumbs))))

	hashed := make([]thumbnail.HashedFile, 0, len(thumbs))
	for _, path := range thumbs {
		hash, err := thumbnail.HashImageFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping thumbnail")
			continue
		}
		hashed = append(hashed, thumbnail.HashedFile{Path: path, Hash: hash})
	}

	pairs, err := thumbnail.FindSimilar(hashed, cmd.Threshold)
	if err != nil {
		return err
	}

	if len(pairs) == 0 {
		fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ No similar files found within threshold"))
		return nil
	}

	fmt.Printf("\n%s\n", ui.InfoStyle.Render(fmt.Sprintf("Similar pairs (threshold: %d):", cmd.Threshold)))
	for _, p := range pairs {
		fmt.Printf("🎯 Similar (distance %d): %s ↔ %s\n", p.Distance, cmd.rel(p.A), cmd.rel(p.B))
	}
	return nil
}

func (cmd *SimilarCmd) rel(path string) string {
	if r, err := filepath.Rel(cmd.Directory, path); err == nil {
		return r
	}
	return path
}
