package video

import "testing"

func TestSplitPrefix(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedPrefix string
		expectedExt    string
	}{
		{"simple", "/videos/clip.avi", "/videos/clip", "avi"},
		{"spaces", "/videos/my holiday clip.mp4", "/videos/my_holiday_clip", "mp4"},
		{"inner dots", "/videos/show.s01e02.mkv", "/videos/show_s01e02", "mkv"},
		{"directory untouched", "/my videos/v1.0/clip.avi", "/my videos/v1.0/clip", "avi"},
		{"relative", "clip.MP4", "clip", "MP4"},
		{"no extension", "/videos/README", "/videos/README", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, ext := SplitPrefix(tt.path)
			if prefix != tt.expectedPrefix || ext != tt.expectedExt {
				t.Errorf("SplitPrefix(%q) = (%q, %q), expected (%q, %q)",
					tt.path, prefix, ext, tt.expectedPrefix, tt.expectedExt)
			}
		})
	}
}

func TestNormalizedPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/videos/clip.avi", "/videos/clip.avi"},
		{"/videos/my clip.avi", "/videos/my_clip.avi"},
		{"/videos/a.b c.mov", "/videos/a_b_c.mov"},
	}

	for _, tt := range tests {
		if got := NormalizedPath(tt.path); got != tt.expected {
			t.Errorf("NormalizedPath(%q) = %q, expected %q", tt.path, got, tt.expected)
		}
	}
}

func TestConvertedPath(t *testing.T) {
	got := ConvertedPath("/videos/clip", "avi", "mp4")
	if got != "/videos/clip_convert_from_avi.mp4" {
		t.Errorf("ConvertedPath() = %q", got)
	}
}

func TestThumbPath(t *testing.T) {
	tests := []struct {
		videoPath string
		expected  string
	}{
		{"/videos/clip.mp4", "/videos/clip_thumb.jpg"},
		{"/videos/clip_convert_from_avi.mp4", "/videos/clip_convert_from_avi_thumb.jpg"},
		{"/videos/my clip.mp4", "/videos/my_clip_thumb.jpg"},
	}

	for _, tt := range tests {
		if got := ThumbPath(tt.videoPath); got != tt.expected {
			t.Errorf("ThumbPath(%q) = %q, expected %q", tt.videoPath, got, tt.expected)
		}
		if !IsThumbnail(ThumbPath(tt.videoPath)) {
			t.Errorf("IsThumbnail(%q) = false", ThumbPath(tt.videoPath))
		}
	}

	if IsThumbnail("/videos/clip.mp4.jpg") {
		t.Error("Stale preview must not be treated as a thumbnail")
	}
}
