// Package preview turns remote photos into colored half-block text that can
// be drawn inside the terminal UI.
package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nfnt/resize"
)

// upper half block: foreground paints the top pixel, background the bottom one
const halfBlock = "▀"

// maxImageBytes bounds how much of a response body is decoded
const maxImageBytes = 20 << 20

// Renderer downloads images and renders them as text, caching the output
type Renderer struct {
	client *http.Client
	cache  *lru.Cache[string, string]
}

// NewRenderer creates a renderer that keeps up to cacheSize rendered images
func NewRenderer(client *http.Client, cacheSize int) (*Renderer, error) {
	if client == nil {
		client = http.DefaultClient
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating preview cache: %w", err)
	}
	return &Renderer{client: client, cache: cache}, nil
}

func cacheKey(url string, cols, rows int) string {
	return fmt.Sprintf("%s@%dx%d", url, cols, rows)
}

// Render fetches url and renders it to fit within cols x rows terminal cells
func (r *Renderer) Render(ctx context.Context, url string, cols, rows int) (string, error) {
	if url == "" {
		return "", fmt.Errorf("no image url")
	}
	if cols < 1 || rows < 1 {
		return "", fmt.Errorf("invalid preview size %dx%d", cols, rows)
	}

	key := cacheKey(url, cols, rows)
	if out, ok := r.cache.Get(key); ok {
		return out, nil
	}

	img, err := r.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	out := RenderImage(img, cols, rows)
	r.cache.Add(key, out)
	return out, nil
}

// Cached reports whether a rendering for url at cols x rows is cached
func (r *Renderer) Cached(url string, cols, rows int) bool {
	return r.cache.Contains(cacheKey(url, cols, rows))
}

func (r *Renderer) fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating image request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching image: HTTP %d", resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	return img, nil
}

// RenderImage scales img to fit cols x rows cells, keeping its aspect ratio.
// Each cell covers two vertical pixels.
func RenderImage(img image.Image, cols, rows int) string {
	thumb := resize.Thumbnail(uint(cols), uint(rows*2), img, resize.Lanczos3)
	b := thumb.Bounds()

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(hexColor(thumb.At(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(hexColor(thumb.At(x, y+1)))
			}
			sb.WriteString(style.Render(halfBlock))
		}
	}
	return sb.String()
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
