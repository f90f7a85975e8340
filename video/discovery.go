package video

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FindFiles lists every regular file under root in lexical order. The listing is
// complete before any file is touched, so outputs written during a run are not revisited.
func FindFiles(root string) ([]string, error) {
	return walkFiles(root, func(string) bool { return true })
}

// FindThumbnails lists generated grid thumbnails under root
func FindThumbnails(root string) ([]string, error) {
	return walkFiles(root, IsThumbnail)
}

func walkFiles(root string, keep func(path string) bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.Type()&fs.ModeSymlink != 0 {
			// Symlinked files are followed; symlinked directories are not descended into
			fi, err := os.Stat(path)
			if err != nil || !fi.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		if keep(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
