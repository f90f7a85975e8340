package cmd

import (
	"fmt"

	"github.com/lepinkainen/thumbgrid/ui"
	"github.com/lepinkainen/thumbgrid/utils"
)

// CheckCmd verifies that the external ffmpeg tools are installed
type CheckCmd struct{}

func (cmd *CheckCmd) Run() error {
	for _, tool := range []string{"ffmpeg", "ffprobe"} {
		version, err := utils.ToolVersion(tool)
		if err != nil {
			fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %s: %v", tool, err)))
			continue
		}
		fmt.Printf("%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ %s", version)))
	}

	return utils.ValidateFFmpegDependencies()
}
