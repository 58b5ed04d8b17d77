// Package imgio loads segmentation masks from NIfTI or DICOM files into the
// dense grid representation the metric packages consume. It is a collaborator
// of the core, not part of it: the metric packages never touch the
// filesystem.
package imgio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/jcreinhold/lesion-metrics/mask"
)

// Image is a loaded occupancy grid plus the physical spacing of its voxels.
type Image struct {
	Grid    *mask.Dense
	Spacing []float64
	Path    string
}

// Load reads a mask from path, dispatching on the file extension.
func Load(path string) (*Image, error) {
	switch {
	case strings.HasSuffix(path, ".nii"), strings.HasSuffix(path, ".nii.gz"):
		return LoadNIfTI(path)
	case strings.HasSuffix(path, ".dcm"):
		return LoadDICOM(path)
	}
	return nil, pfx.Err(fmt.Errorf("unrecognized image extension on %s", path))
}

// GlobImages lists the image files in dir matching pattern (default *.nii*),
// sorted for reproducible pred/truth pairing across two directories.
func GlobImages(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.nii*"
	}
	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		return nil, pfx.Err(fmt.Errorf("%s is not a valid path to a directory", dir))
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, pfx.Err(err)
	}
	sort.Strings(matches)
	return matches, nil
}

// SplitFilename returns the directory, base name, and extension of an image
// path, treating .nii.gz as one extension.
func SplitFilename(path string) (dir, base, ext string) {
	dir = filepath.Dir(path)
	base = filepath.Base(path)
	ext = filepath.Ext(base)
	base = strings.TrimSuffix(base, ext)
	if ext == ".gz" {
		if ext2 := filepath.Ext(base); ext2 != "" {
			base = strings.TrimSuffix(base, ext2)
			ext = ext2 + ext
		}
	}
	return dir, base, ext
}
