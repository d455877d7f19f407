package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"

	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

// Loader reads form documents from files, an fs.FS or HTTP. Every source is
// held to the same size cap.
type Loader struct {
	files   fs.FS
	client  *http.Client
	maxSize int64
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options.
func New(options pkgopenapi.LoaderOptions) *Loader {
	l := &Loader{
		files:   options.FileSystem,
		maxSize: options.MaxDocumentSize,
	}
	if l.maxSize <= 0 {
		l.maxSize = pkgopenapi.DefaultMaxDocumentSize
	}

	switch {
	case options.HTTPClient != nil:
		client := *options.HTTPClient
		if client.Timeout == 0 {
			client.Timeout = options.RequestTimeout
		}
		l.client = &client
	case options.AllowHTTPFallback:
		l.client = &http.Client{Timeout: options.RequestTimeout}
	}
	return l
}

// Load reads the document behind src.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, errors.New("openapi loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}

	var (
		body io.ReadCloser
		err  error
	)
	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		body, err = openFile(src.Location())
	case pkgopenapi.SourceKindFS:
		body, err = openFromFS(l.files, src.Location())
	case pkgopenapi.SourceKindURL:
		if l.client == nil {
			return pkgopenapi.Document{}, errors.New("openapi loader: http support disabled")
		}
		body, err = openHTTP(ctx, l.client, src.Location())
	default:
		err = fmt.Errorf("openapi loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return pkgopenapi.Document{}, err
	}
	defer body.Close()

	data, err := readCapped(body, l.maxSize)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: %s: %w", src.Location(), err)
	}
	return pkgopenapi.NewDocument(src, data)
}

// readCapped reads r fully, failing rather than truncating past limit.
func readCapped(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", pkgopenapi.ErrDocumentTooLarge, limit)
	}
	return data, nil
}
