package load

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const documentName = "schema_payload.json"

// Discover walks <dataDir>/<year>/<facilityType> and returns every
// schema_payload.json beneath it, in walk order. A missing root directory is
// a fatal precondition, reported before any write happens.
func Discover(dataDir string, year int, facilityType string) ([]string, error) {
	root := filepath.Join(dataDir, fmt.Sprint(year), facilityType)
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("input directory %s: %w", root, err)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == documentName {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return files, nil
}
