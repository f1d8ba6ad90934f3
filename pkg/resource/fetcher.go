// Package resource loads documents and their subresources and runs the
// parse, script and layout steps that turn a URI into a laid-out page.
package resource

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const userAgent = "boxwright/1.0 (compatible; Go)"

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (body []byte, contentType string, err error)
}

// DefaultFetcher reads http(s) URLs, file URLs, data URIs and local paths.
// Relative references resolve against the base.
type DefaultFetcher struct {
	base   string
	client *http.Client
}

func NewFetcher(base string) *DefaultFetcher {
	return &DefaultFetcher{
		base:   base,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBase returns a fetcher sharing f's client with a different base.
func (f *DefaultFetcher) WithBase(base string) *DefaultFetcher {
	return &DefaultFetcher{base: base, client: f.client}
}

func (f *DefaultFetcher) Base() string { return f.base }

func (f *DefaultFetcher) Fetch(ctx context.Context, uri string) ([]byte, string, error) {
	if strings.HasPrefix(uri, "data:") {
		return decodeData(uri)
	}
	resolved := uri
	if f.base != "" {
		resolved = ResolveURL(f.base, uri)
	}
	if IsNetworkURL(resolved) {
		return f.fetchHTTP(ctx, resolved)
	}

	path := resolved
	if u, err := url.Parse(resolved); err == nil && u.Scheme == "file" {
		path = u.Path
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return body, mime.TypeByExtension(filepath.Ext(path)), nil
}

func (f *DefaultFetcher) fetchHTTP(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("HTTP %d fetching %s", resp.StatusCode, rawURL)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading response body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// decodeData decodes a data: URI into its payload and media type.
func decodeData(uri string) ([]byte, string, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI")
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if mediaType == "" {
		mediaType = "text/plain"
	}
	if isBase64 {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("decode data URI: %w", err)
		}
		return b, mediaType, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode data URI: %w", err)
	}
	return []byte(s), mediaType, nil
}

// ResolveURL resolves ref against base. Bases without a scheme are treated
// as file paths: ref is joined to the base's directory.
func ResolveURL(base, ref string) string {
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if refURL.Scheme != "" || base == "" {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Scheme == "" {
		if filepath.IsAbs(ref) {
			return ref
		}
		return filepath.Join(filepath.Dir(base), ref)
	}
	return baseURL.ResolveReference(refURL).String()
}

// IsNetworkURL reports whether s is an http or https URL.
func IsNetworkURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
