package video

import (
	"path/filepath"
	"strings"
)

// videoExtensions lists every recognised video extension. Matching is case-sensitive,
// so lowercase and uppercase spellings are enumerated separately.
var videoExtensions = []string{
	"avi", "AVI",
	"mp4", "MP4",
	"mov", "MOV",
	"wmv", "WMV",
	"mkv", "MKV",
	"flv", "FLV",
	"webm", "WEBM",
	"mpeg", "MPEG",
	"mpg", "MPG",
	"m4v", "M4V",
	"3gp", "3GP",
	"asf", "ASF",
	"vob", "VOB",
	"ts", "TS",
	"m2ts", "M2TS",
	"divx", "DIVX",
	"rm", "RM",
	"rmvb", "RMVB",
	"ogv", "OGV",
	"mxf", "MXF",
	"mpv", "MPV",
	"hevc", "HEVC",
}

var videoExtensionSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(videoExtensions))
	for _, ext := range videoExtensions {
		set[ext] = struct{}{}
	}
	return set
}()

// Class is the role a file plays in a processing run
type Class int

const (
	// ClassOther is any file the pipeline leaves alone
	ClassOther Class = iota
	// ClassVideo is a file with a known video extension
	ClassVideo
	// ClassImage is a jpg, including generated thumbnails
	ClassImage
	// ClassStalePreview is a leftover <name>.<videoExt>.jpg preview that gets deleted
	ClassStalePreview
)

func (c Class) String() string {
	switch c {
	case ClassVideo:
		return "video"
	case ClassImage:
		return "image"
	case ClassStalePreview:
		return "stale preview"
	default:
		return "other"
	}
}

// IsVideoExtension reports whether ext (without the leading dot) is a known video extension
func IsVideoExtension(ext string) bool {
	_, ok := videoExtensionSet[ext]
	return ok
}

// IsVideoFile checks if the given file extension is one of known video file extensions
func IsVideoFile(path string) bool {
	return IsVideoExtension(extension(path))
}

// IsStalePreview reports whether path is a legacy preview named after its video, e.g. movie.mp4.jpg
func IsStalePreview(path string) bool {
	inner, ok := strings.CutSuffix(path, ".jpg")
	if !ok {
		return false
	}
	return IsVideoExtension(extension(inner))
}

// Classify decides how the pipeline treats path. Hidden files are never touched.
// Stale previews are recognised before plain images because both end in .jpg.
func Classify(path string) Class {
	// Covers dotfiles such as ".hidden.mp4" and macOS "._clip.mp4" resource forks
	if strings.HasPrefix(filepath.Base(path), ".") {
		return ClassOther
	}

	if IsStalePreview(path) {
		return ClassStalePreview
	}

	ext := extension(path)
	if ext == "jpg" {
		return ClassImage
	}

	if IsVideoExtension(ext) {
		return ClassVideo
	}
	return ClassOther
}

// extension returns the final extension of path without the dot
func extension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
