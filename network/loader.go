package network

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// ErrNotHTML is returned when a location serves something other than HTML.
var ErrNotHTML = errors.New("not an HTML document")

// Page is a page source, decoded to UTF-8.
type Page struct {
	URL       string
	MediaType string
	Source    string
}

// Loader resolves page locations: filesystem paths, file:// and data: URLs,
// and http(s) URLs.
type Loader struct {
	client *Client
	logger *zap.Logger
}

// NewLoader creates a loader fetching remote pages through client. A nil
// client is created on first remote load with default options.
func NewLoader(client *Client, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{client: client, logger: logger.Named("loader")}
}

// Load reads the page at location.
func (l *Loader) Load(ctx context.Context, location string) (*Page, error) {
	var (
		raw []byte
		ct  string
		err error
	)
	final := location

	switch {
	case IsDataURL(location):
		raw, ct, err = l.loadDataURL(location)
	case hasScheme(location, "http"), hasScheme(location, "https"):
		raw, ct, final, err = l.loadFromHTTP(ctx, location)
	case hasScheme(location, "file"):
		var u *url.URL
		if u, err = url.Parse(location); err == nil {
			raw, ct, err = loadFromLocal(u.Path)
		}
	case strings.Contains(location, "://"):
		err = fmt.Errorf("unsupported scheme in %q", location)
	default:
		raw, ct, err = loadFromLocal(location)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", location, err)
	}

	mediaType, _ := ParseContentType(ct)
	if !IsHTMLContentType(ct) {
		return nil, fmt.Errorf("load %s: %s: %w", location, mediaType, ErrNotHTML)
	}

	src, err := decode(raw, ct)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", location, err)
	}
	l.logger.Debug("page loaded", zap.String("url", final), zap.Int("bytes", len(raw)))
	return &Page{URL: final, MediaType: mediaType, Source: src}, nil
}

func (l *Loader) loadDataURL(location string) ([]byte, string, error) {
	d, err := ParseDataURL(location)
	if err != nil {
		return nil, "", err
	}
	return d.Data, d.ContentType(), nil
}

func (l *Loader) loadFromHTTP(ctx context.Context, location string) ([]byte, string, string, error) {
	if l.client == nil {
		client, err := NewClient(WithClientLogger(l.logger))
		if err != nil {
			return nil, "", "", err
		}
		l.client = client
	}
	resp, err := l.client.Get(ctx, location)
	if err != nil {
		return nil, "", "", err
	}
	ct := resp.ContentType
	if ct == "" {
		ct = "text/html"
	}
	return resp.Body, ct, resp.URL, nil
}

// loadFromLocal reads a page from disk. Files are assumed to be HTML unless
// the extension says otherwise.
func loadFromLocal(path string) ([]byte, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".html", ".htm", ".xhtml":
		return content, "text/html", nil
	}
	return content, "application/octet-stream", nil
}

// decode converts raw to UTF-8 using the charset from ct or, failing that,
// from the content itself.
func decode(raw []byte, ct string) (string, error) {
	r, err := charset.NewReader(bytes.NewReader(raw), ct)
	if err != nil {
		return "", fmt.Errorf("failed to detect charset: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode page: %w", err)
	}
	return string(out), nil
}

func hasScheme(location, scheme string) bool {
	return len(location) > len(scheme)+3 &&
		strings.EqualFold(location[:len(scheme)], scheme) &&
		location[len(scheme):len(scheme)+3] == "://"
}
