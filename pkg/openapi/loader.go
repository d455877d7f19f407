package openapi

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches OpenAPI documents.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// DefaultMaxDocumentSize caps documents from every source kind at 8 MiB.
const DefaultMaxDocumentSize int64 = 8 << 20

// ErrDocumentTooLarge is returned when a document exceeds the size cap.
var ErrDocumentTooLarge = errors.New("openapi: document exceeds size limit")

// LoaderOptions configures how a Loader resolves sources. HTTP is disabled
// unless a client is supplied or AllowHTTPFallback is set.
type LoaderOptions struct {
	FileSystem        fs.FS
	HTTPClient        *http.Client
	AllowHTTPFallback bool
	RequestTimeout    time.Duration
	// MaxDocumentSize is the byte cap; zero means DefaultMaxDocumentSize.
	MaxDocumentSize int64
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem resolves fs sources against files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient enables URL sources using client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources on a default client with timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// WithMaxDocumentSize changes the byte cap applied to every source.
func WithMaxDocumentSize(n int64) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.MaxDocumentSize = n
	}
}

// NewLoaderOptions applies options in order.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
