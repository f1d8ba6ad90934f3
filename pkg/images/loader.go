// Package images decodes and caches the images referenced by <img src>.
package images

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"strings"
	"sync"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Fetcher returns the raw bytes behind a URI.
type Fetcher func(uri string) ([]byte, error)

// Cache decodes images once per URI. It is safe for concurrent use.
type Cache struct {
	fetch Fetcher

	mu    sync.RWMutex
	cache map[string]image.Image
}

// NewCache returns a cache reading through fetch. A nil fetch reads local
// files.
func NewCache(fetch Fetcher) *Cache {
	if fetch == nil {
		fetch = os.ReadFile
	}
	return &Cache{fetch: fetch, cache: make(map[string]image.Image)}
}

func IsDataURI(s string) bool { return strings.HasPrefix(s, "data:") }

// DecodeDataURI decodes a data: URI holding an image.
func DecodeDataURI(uri string) (image.Image, error) {
	data, err := dataURIBytes(uri)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func dataURIBytes(uri string) ([]byte, error) {
	if !IsDataURI(uri) {
		return nil, fmt.Errorf("not a data uri: %.32q", uri)
	}
	meta, payload, ok := strings.Cut(uri[len("data:"):], ",")
	if !ok {
		return nil, errors.New("data uri has no payload")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data uri: %w", err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("data uri: %w", err)
	}
	return []byte(s), nil
}

func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Load returns the decoded image for uri.
func (c *Cache) Load(uri string) (image.Image, error) {
	c.mu.RLock()
	img, ok := c.cache[uri]
	c.mu.RUnlock()
	if ok {
		return img, nil
	}

	var data []byte
	var err error
	if IsDataURI(uri) {
		data, err = dataURIBytes(uri)
	} else {
		data, err = c.fetch(uri)
	}
	if err != nil {
		return nil, err
	}
	if img, err = decode(data); err != nil {
		return nil, fmt.Errorf("%s: %w", uri, err)
	}

	c.mu.Lock()
	c.cache[uri] = img
	c.mu.Unlock()
	return img, nil
}

// Dimensions returns the natural size of the image at uri.
func (c *Cache) Dimensions(uri string) (width, height int, err error) {
	img, err := c.Load(uri)
	if err != nil {
		return 0, 0, err
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}

// Scale resamples img to w by h pixels.
func Scale(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(1, w), max(1, h)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}
