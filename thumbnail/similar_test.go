package thumbnail

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

// gradient draws a horizontal or vertical ramp so hashes differ between orientations
func gradient(w, h int, vertical bool) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / w)
			if vertical {
				v = uint8(y * 255 / h)
			}
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

func TestHashImageFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a_thumb.jpg")
	second := filepath.Join(dir, "b_thumb.jpg")

	for _, p := range []string{first, second} {
		if err := WriteJPEG(p, gradient(200, 100, false), DefaultQuality); err != nil {
			t.Fatalf("WriteJPEG() error = %v", err)
		}
	}

	h1, err := HashImageFile(first)
	if err != nil {
		t.Fatalf("HashImageFile() error = %v", err)
	}
	h2, err := HashImageFile(second)
	if err != nil {
		t.Fatalf("HashImageFile() error = %v", err)
	}

	distance, err := h1.Distance(h2)
	if err != nil {
		t.Fatalf("Distance() error = %v", err)
	}
	if distance != 0 {
		t.Errorf("Expected identical images to have distance 0, got %d", distance)
	}
}

func TestHashImageFile_Errors(t *testing.T) {
	if _, err := HashImageFile("/path/to/nonexistent_thumb.jpg"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFindSimilar(t *testing.T) {
	horizontal, err := HashImage(gradient(200, 100, false))
	if err != nil {
		t.Fatalf("HashImage() error = %v", err)
	}
	vertical, err := HashImage(gradient(200, 100, true))
	if err != nil {
		t.Fatalf("HashImage() error = %v", err)
	}

	files := []HashedFile{
		{Path: "a_thumb.jpg", Hash: horizontal},
		{Path: "b_thumb.jpg", Hash: vertical},
		{Path: "c_thumb.jpg", Hash: horizontal},
	}

	pairs, err := FindSimilar(files, 0)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("Expected exactly one identical pair, got %v", pairs)
	}
	if pairs[0].A != "a_thumb.jpg" || pairs[0].B != "c_thumb.jpg" || pairs[0].Distance != 0 {
		t.Errorf("Unexpected pair: %+v", pairs[0])
	}

	all, err := FindSimilar(files, MaxDistance)
	if err != nil {
		t.Fatalf("FindSimilar() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected every pair within the maximum distance, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Distance > all[i].Distance {
			t.Errorf("Pairs not sorted by distance: %v", all)
		}
	}
}
