package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultFileResolver resolves includes on the local filesystem: absolute
// paths as is, relative paths against the including file's directory and
// then each of SearchPaths in order.
type DefaultFileResolver struct {
	SearchPaths []string
}

func NewDefaultFileResolver(searchPaths ...string) *DefaultFileResolver {
	return &DefaultFileResolver{SearchPaths: searchPaths}
}

func (r *DefaultFileResolver) Resolve(importerPath, includePath string) (io.ReadCloser, string, error) {
	candidates := []string{includePath}
	if !filepath.IsAbs(includePath) {
		candidates = []string{filepath.Join(filepath.Dir(importerPath), includePath)}
		for _, dir := range r.SearchPaths {
			candidates = append(candidates, filepath.Join(dir, includePath))
		}
	}

	for _, candidate := range candidates {
		canonical, err := filepath.Abs(candidate)
		if err != nil {
			return nil, "", fmt.Errorf("could not get absolute path for '%s': %w", candidate, err)
		}
		file, err := os.Open(canonical)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("could not open file '%s': %w", canonical, err)
		}
		return file, canonical, nil
	}
	return nil, "", fmt.Errorf("file not found: %s (searched %v)", includePath, candidates)
}
