package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
)

func openFromFS(files fs.FS, name string) (io.ReadCloser, error) {
	if files == nil {
		return nil, errors.New("openapi loader: filesystem is not configured")
	}
	name = strings.TrimPrefix(name, "./")
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("openapi loader: invalid fs path %q", name)
	}
	f, err := files.Open(name)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: open %s: %w", name, err)
	}
	return f, nil
}
