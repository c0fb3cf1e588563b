package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileFetcher reads local text files. With Root set, paths are resolved inside Root
// and may not escape it.
type FileFetcher struct {
	Root     string
	MaxBytes int64
}

// Fetch reads ref.Path.
func (f *FileFetcher) Fetch(_ context.Context, ref Ref) (string, error) {
	if ref.Scheme != SchemeFile {
		return "", fmt.Errorf("%w: %s is not a file reference", ErrUnsupported, ref)
	}

	path, err := f.resolve(ref.Path)
	if err != nil {
		return "", err
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, ref.Path)
		}
		return "", fmt.Errorf("failed to open %s: %w", ref.Path, err)
	}
	defer file.Close()

	return readText(file, f.MaxBytes, ref.Path)
}

func (f *FileFetcher) resolve(path string) (string, error) {
	if f.Root == "" {
		return path, nil
	}
	rel := strings.TrimPrefix(filepath.Clean("/"+path), "/")
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %s escapes %s", ErrUnsupported, path, f.Root)
	}
	return filepath.Join(f.Root, rel), nil
}
