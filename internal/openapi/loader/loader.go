// Package loader fetches OpenAPI documents from local files, fs.FS trees,
// and HTTP endpoints behind the public openapi.Loader contract.
package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
)

// maxDocumentSize caps document reads at 10 MiB so a mistyped path or URL
// cannot balloon memory before the parser sees the payload.
const maxDocumentSize = 10 << 20

// Loader resolves a Source to raw document bytes. Construct it through New
// so option defaults apply.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New builds a Loader from resolved options. HTTP loading stays disabled
// unless the options carry a client or enable the fallback.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	l := &Loader{
		files:   options.FileSystem,
		timeout: options.RequestTimeout,
	}
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if l.timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = l.timeout
		}
		l.client = &clone
	case options.AllowHTTPFallback:
		l.client = &http.Client{Timeout: l.timeout}
	}
	return l
}

// Load fetches the document named by src and wraps the payload.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if src == nil {
		return pkgopenapi.Document{}, fmt.Errorf("loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}

	var (
		data []byte
		err  error
	)
	switch kind := src.Kind(); kind {
	case pkgopenapi.SourceKindFile:
		data, err = l.readFile(src.Location())
	case pkgopenapi.SourceKindFS:
		data, err = l.readFS(src.Location())
	case pkgopenapi.SourceKindURL:
		data, err = l.fetch(ctx, src.Location())
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", kind)
	}
	if err != nil {
		return pkgopenapi.Document{}, err
	}
	if len(data) > maxDocumentSize {
		return pkgopenapi.Document{}, fmt.Errorf("loader: %s exceeds the %d byte document limit", src.Location(), maxDocumentSize)
	}
	return pkgopenapi.NewDocument(src, data)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("loader: file path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return data, nil
}

func (l *Loader) readFS(name string) ([]byte, error) {
	if l.files == nil {
		return nil, fmt.Errorf("loader: no filesystem configured for fs source %q", name)
	}
	if name == "" {
		return nil, fmt.Errorf("loader: fs path is empty")
	}
	data, err := fs.ReadFile(l.files, name)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", name, err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.client == nil {
		return nil, fmt.Errorf("loader: http loading is disabled for %s", url)
	}
	if url == "" {
		return nil, fmt.Errorf("loader: url is empty")
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("loader: build request for %s: %w", url, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("loader: fetch %s: %w", url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("loader: fetch %s: status %s", url, resp.Status)
	}

	// Read one byte past the cap so Load can tell "at the limit" from
	// "over it".
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("loader: fetch %s: %w", url, err)
	}
	return data, nil
}
