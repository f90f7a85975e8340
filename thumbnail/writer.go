package thumbnail

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
)

// DefaultQuality is the JPEG quality used for thumbnails
const DefaultQuality = 95

// renameFunc is swapped in tests to simulate rename failures
var renameFunc = os.Rename

// WriteJPEG encodes img as a JPEG at path. The image is written to a temporary file
// in the same directory and renamed into place. An existing file at path is never
// replaced; os.ErrExist is returned instead.
func WriteJPEG(path string, img image.Image, quality int) error {
	if fi, err := os.Lstat(path); err == nil {
		if fi.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		return fmt.Errorf("thumbnail %s: %w", path, os.ErrExist)
	} else if !os.IsNotExist(err) {
		return err
	}

	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	bw := bufio.NewWriter(tmp)
	if err := jpeg.Encode(bw, img, &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("failed to encode jpeg: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write jpeg: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := renameFunc(tmpName, path); err != nil {
		return fmt.Errorf("failed to move thumbnail into place: %w", err)
	}
	return nil
}
