package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

var (
	ErrFFmpegNotFound  = errors.New("ffmpeg not found in PATH")
	ErrFFprobeNotFound = errors.New("ffprobe not found in PATH")
)

var lookPath = exec.LookPath

// ValidateFFmpegDependencies checks if ffmpeg and ffprobe are available in PATH
func ValidateFFmpegDependencies() error {
	// Check for ffprobe
	if _, err := lookPath("ffprobe"); err != nil {
		return fmt.Errorf("%w. %s", ErrFFprobeNotFound, getInstallationInstructions())
	}

	// Check for ffmpeg
	if _, err := lookPath("ffmpeg"); err != nil {
		return fmt.Errorf("%w. %s", ErrFFmpegNotFound, getInstallationInstructions())
	}

	return nil
}

// ToolVersion returns the first line of `<name> -version`, e.g. "ffmpeg version 6.1.1 ..."
func ToolVersion(name string) (string, error) {
	path, err := lookPath(name)
	if err != nil {
		return "", err
	}

	var stdout bytes.Buffer
	cmd := exec.Command(path, "-hide_banner", "-version")
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s -version: %w", name, err)
	}

	line, _, _ := strings.Cut(stdout.String(), "\n")
	return strings.TrimSpace(line), nil
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install with: brew install ffmpeg"
	case "linux":
		return "Install with: apt-get install ffmpeg (Ubuntu/Debian) or yum install ffmpeg (CentOS/RHEL)"
	case "windows":
		return "Download from https://ffmpeg.org/download.html and add to PATH"
	default:
		return "Download from https://ffmpeg.org/download.html"
	}
}
