package video

import (
	"fmt"
	"path/filepath"
	"strings"
)

const thumbSuffix = "_thumb.jpg"

// SplitPrefix splits path into its prefix and final extension. Inside the file name,
// all dots but the last become underscores and spaces become underscores; the
// directory part is kept verbatim.
//
//	"/videos/My Clip.v2.avi" -> "/videos/My_Clip_v2", "avi"
func SplitPrefix(path string) (prefix, ext string) {
	dir, base := filepath.Split(path)
	parts := strings.Split(base, ".")
	if len(parts) < 2 {
		return dir + strings.ReplaceAll(base, " ", "_"), ""
	}

	name := strings.Join(parts[:len(parts)-1], "_")
	name = strings.ReplaceAll(name, " ", "_")
	return dir + name, parts[len(parts)-1]
}

// NormalizedPath returns the name a video is renamed to before conversion
func NormalizedPath(path string) string {
	prefix, ext := SplitPrefix(path)
	if ext == "" {
		return prefix
	}
	return prefix + "." + ext
}

// ConvertedPath returns the output path of a conversion. The original extension is
// kept in the name so later runs recognise the file as already converted.
func ConvertedPath(prefix, ext, targetExt string) string {
	return fmt.Sprintf("%s_convert_from_%s.%s", prefix, ext, targetExt)
}

// ThumbPath returns the grid thumbnail path for a video
func ThumbPath(videoPath string) string {
	prefix, _ := SplitPrefix(videoPath)
	return prefix + thumbSuffix
}

// IsThumbnail reports whether path looks like a generated grid thumbnail
func IsThumbnail(path string) bool {
	return strings.HasSuffix(filepath.Base(path), thumbSuffix)
}
