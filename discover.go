package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var supportedFormats = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// DefaultOutputDirName is the sibling folder used when no output is given.
const DefaultOutputDirName = "webp"

// DiscoverInputs lists the supported images directly inside folder, sorted by
// path. Subdirectories are not descended into.
func DiscoverInputs(folder string) ([]string, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("%w: input folder does not exist: %s", ErrNotFound, folder)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: input path is not a directory: %s", ErrNotFound, folder)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrIO, folder, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			// Follow symlinks to regular files, skip everything else.
			if entry.Type()&os.ModeSymlink == 0 {
				continue
			}
			target, err := os.Stat(filepath.Join(folder, entry.Name()))
			if err != nil || !target.Mode().IsRegular() {
				continue
			}
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		// ".jpg" alone is a dotfile with no extension, not an image named "".
		if ext == name {
			continue
		}
		if supportedFormats[strings.ToLower(ext)] {
			files = append(files, filepath.Join(folder, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

// OutputDirFor returns explicit when set, otherwise the "webp" folder next to
// inputFolder. It does not touch the filesystem.
func OutputDirFor(inputFolder, explicit string) string {
	if explicit != "" {
		return explicit
	}
	parent := filepath.Dir(filepath.Clean(inputFolder))
	return filepath.Join(parent, DefaultOutputDirName)
}

// ResolveOutputDir computes the output folder and creates it with parents.
func ResolveOutputDir(inputFolder, explicit string) (string, error) {
	dir := OutputDirFor(inputFolder, explicit)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: cannot create output folder %s: %v", ErrIO, dir, err)
	}
	return dir, nil
}

// OutputPath swaps the final extension of inputPath's base name for ext and
// places it in outputDir.
func OutputPath(inputPath, outputDir, ext string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+ext)
}
