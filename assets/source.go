package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var ErrNotFound = errors.New("assets: not found")

// Source serves static assets by slash-separated, root-relative path such as
// "/render/frame_00001.png".
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

// NewSource picks an HTTP source for http(s) roots and a directory source for
// anything else.
func NewSource(root string) (Source, error) {
	if strings.HasPrefix(root, "http://") || strings.HasPrefix(root, "https://") {
		return NewHTTPSource(root, nil)
	}
	return NewDirSource(root)
}

// DirSource serves assets from a local directory.
type DirSource struct {
	root string
}

func NewDirSource(root string) (*DirSource, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("assets: resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("assets: open root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets: root %s is not a directory", root)
	}
	return &DirSource{root: abs}, nil
}

func (s *DirSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(s.Path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", name, err)
	}
	return f, nil
}

// Path maps an asset name to its location on disk.
func (s *DirSource) Path(name string) string {
	clean := path.Clean("/" + filepath.ToSlash(name))
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
}

// Name maps a file on disk back to its asset name. It reports false for
// files outside the root.
func (s *DirSource) Name(file string) (string, bool) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return "/" + filepath.ToSlash(rel), true
}

func (s *DirSource) Root() string {
	return s.root
}

func (s *DirSource) String() string {
	return s.root
}

// HTTPSource fetches assets from a static file server.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource builds a source rooted at base. A nil client gets a shared
// default with a timeout.
func NewHTTPSource(base string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("assets: parse base url %q: %w", base, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("assets: unsupported scheme %q", u.Scheme)
	}
	if client == nil {
		client = defaultHTTPClient
	}
	return &HTTPSource{base: u, client: client}, nil
}

var defaultHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}

func (s *HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	target := s.URL(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("assets: request %s: %w", target, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assets: get %s: %w", target, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, target)
	case resp.StatusCode != http.StatusOK:
		resp.Body.Close()
		return nil, fmt.Errorf("assets: get %s: %s", target, resp.Status)
	}
	return resp.Body, nil
}

// URL resolves an asset name against the base URL.
func (s *HTTPSource) URL(name string) string {
	u := *s.base
	u.Path = path.Join("/", s.base.Path, name)
	return u.String()
}

func (s *HTTPSource) String() string {
	return s.base.String()
}

// ReadAll opens name and reads it fully.
func ReadAll(ctx context.Context, src Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", name, err)
	}
	return b, nil
}
