package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mwork/photobackup/internal/pkg/httpx"
	"github.com/mwork/photobackup/internal/pkg/imaging"
)

// Mirror copies photos from their source URL into a Storage. It is the
// destination used for stores that cannot pull a URL by themselves.
type Mirror struct {
	store     Storage
	http      *http.Client
	processor *imaging.Processor
	maxSize   int64
	ua        string
}

// MirrorConfig configures a Mirror.
type MirrorConfig struct {
	Timeout   time.Duration
	MaxSize   int64
	UserAgent string
	Image     imaging.Config
}

// NewMirror creates a mirror writing into store.
func NewMirror(store Storage, cfg MirrorConfig) *Mirror {
	return &Mirror{
		store:     store,
		http:      httpx.NewClient(cfg.Timeout),
		processor: imaging.NewProcessor(cfg.Image),
		maxSize:   cfg.MaxSize,
		ua:        cfg.UserAgent,
	}
}

// CreateFolder creates the folder in the underlying store.
func (m *Mirror) CreateFolder(ctx context.Context, path string) (bool, error) {
	return m.store.MakeFolder(ctx, path)
}

// UploadFromURL downloads sourceURL, checks it is an image, converts it to
// JPEG and stores it under path.
func (m *Mirror) UploadFromURL(ctx context.Context, path, sourceURL string) error {
	if strings.TrimSpace(sourceURL) == "" {
		return fmt.Errorf("mirror %s: empty source url", path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return fmt.Errorf("mirror download request error: %w", err)
	}
	if m.ua != "" {
		req.Header.Set("User-Agent", m.ua)
	}

	resp, err := m.http.Do(req)
	if err != nil {
		return httpx.ClassifyRequestError(ctx, "mirror download", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mirror download http error: status=%d body=%s", resp.StatusCode, httpx.ReadErrorBody(resp.Body))
	}

	data, _, err := ValidatePhoto(resp.Body, m.maxSize)
	if err != nil {
		return fmt.Errorf("mirror %s: %w", path, err)
	}

	img, err := m.processor.ToJPEG(data)
	if err != nil {
		return fmt.Errorf("mirror %s: %w", path, err)
	}

	if err := m.store.Put(ctx, path, bytes.NewReader(img.Data), img.ContentType); err != nil {
		return fmt.Errorf("mirror %s: %w", path, err)
	}
	return nil
}
