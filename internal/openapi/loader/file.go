package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
)

func openFile(path string) (io.ReadCloser, error) {
	if path == "" {
		return nil, errors.New("openapi loader: file path is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: open %s: %w", path, err)
	}
	return f, nil
}
