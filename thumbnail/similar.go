package thumbnail

import (
	"fmt"
	"image"
	"os"
	"sort"

	"github.com/corona10/goimagehash"
)

// MaxDistance is the largest Hamming distance between two 64-bit perceptual hashes
const MaxDistance = 64

// HashedFile pairs a thumbnail path with its perceptual hash
type HashedFile struct {
	Path string
	Hash *goimagehash.ImageHash
}

// SimilarPair is two thumbnails whose hashes are within the threshold
type SimilarPair struct {
	A, B     string
	Distance int
}

// HashImageFile calculates the perceptual hash of an image on disk
func HashImageFile(path string) (*goimagehash.ImageHash, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return HashImage(img)
}

// HashImage calculates the perceptual hash of a decoded image
func HashImage(img image.Image) (*goimagehash.ImageHash, error) {
	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate perceptual hash: %w", err)
	}
	return hash, nil
}

// FindSimilar compares every pair of hashes and returns those within threshold,
// closest pairs first.
func FindSimilar(files []HashedFile, threshold int) ([]SimilarPair, error) {
	var pairs []SimilarPair
	for i := 0; i < len(files); i++ {
		for j := i + 1; j < len(files); j++ {
			distance, err := files[i].Hash.Distance(files[j].Hash)
			if err != nil {
				return nil, fmt.Errorf("comparing %s and %s: %w", files[i].Path, files[j].Path, err)
			}
			if distance <= threshold {
				pairs = append(pairs, SimilarPair{A: files[i].Path, B: files[j].Path, Distance: distance})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Distance < pairs[j].Distance
	})
	return pairs, nil
}
