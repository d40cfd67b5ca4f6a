package covers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// MaxCoverSize caps downloaded cover images.
const MaxCoverSize = 10 << 20

// Store writes cover images next to exported files.
type Store struct {
	dir string
}

// NewStore creates the cover directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cover dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Write saves image as <stem><ext>, the extension derived from the image
// bytes, and returns the file name relative to the store directory.
func (s *Store) Write(stem string, image []byte) (string, error) {
	if len(image) == 0 {
		return "", nil
	}

	name := stem + Extension(image)
	target := filepath.Join(s.dir, name)

	// Temp file in the same directory so the rename is atomic
	tmp, err := os.CreateTemp(s.dir, "cover_tmp_")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return "", err
	}
	return name, nil
}

// ContentType sniffs the MIME type of image.
func ContentType(image []byte) string {
	return http.DetectContentType(image)
}

// Extension maps sniffed image types to a file extension.
func Extension(image []byte) string {
	switch ContentType(image) {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

const userAgent = "QuoteVault/1.0"

// Fetcher downloads cover images over HTTP.
type Fetcher struct {
	httpClient *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch downloads url and returns at most MaxCoverSize bytes.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch cover: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxCoverSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxCoverSize {
		return nil, fmt.Errorf("cover exceeds %d bytes", MaxCoverSize)
	}
	return data, nil
}
