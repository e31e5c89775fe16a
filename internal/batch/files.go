package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/okian/cvparse/internal/adapters/decode"
)

// Collect expands paths into the files to process. Directories are walked
// recursively and only files with a known extension are kept from them.
// Files named directly are always kept so that their error is reported.
// The second result counts files skipped inside directories.
func Collect(paths []string) ([]string, int, error) {
	var (
		files   []string
		skipped int
		seen    = make(map[string]struct{})
	)
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, 0, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(root))
			continue
		}
		var dirFiles []string
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if _, ok := decode.Detect(p); !ok {
				skipped++
				return nil
			}
			dirFiles = append(dirFiles, p)
			return nil
		})
		if err != nil {
			return nil, 0, fmt.Errorf("walk %s: %w", root, err)
		}
		slices.Sort(dirFiles)
		for _, p := range dirFiles {
			add(p)
		}
	}
	return files, skipped, nil
}
