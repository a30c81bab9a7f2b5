package vk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mwork/photobackup/internal/pkg/httpx"
	"github.com/mwork/photobackup/internal/pkg/logger"
)

const (
	// DefaultAlbum is the album holding profile photos.
	DefaultAlbum = "profile"
	// DefaultCount matches the number of photos fetched per run.
	DefaultCount = 5
	// defaultRateLimit is the documented per-token limit of the API.
	defaultRateLimit = 3
)

// Config holds VK API client configuration
type Config struct {
	BaseURL   string
	Token     string
	Version   string
	Timeout   time.Duration
	RateLimit int // requests per second
	UserAgent string
}

// Client represents the VK API client.
type Client struct {
	baseURL string
	token   string
	version string
	ua      string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new VK API client.
func NewClient(cfg Config) *Client {
	rps := cfg.RateLimit
	if rps <= 0 {
		rps = defaultRateLimit
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		version: cfg.Version,
		ua:      cfg.UserAgent,
		http:    httpx.NewClient(cfg.Timeout),
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// ListProfilePhotos returns up to count photos of the owner's album, in the
// order the API lists them.
func (c *Client) ListProfilePhotos(ctx context.Context, ownerID int64, albumID string, count int) ([]Photo, error) {
	if albumID == "" {
		albumID = DefaultAlbum
	}
	if count <= 0 {
		count = DefaultCount
	}

	params := url.Values{}
	params.Set("owner_id", strconv.FormatInt(ownerID, 10))
	params.Set("album_id", albumID)
	params.Set("extended", "1")
	params.Set("count", strconv.Itoa(count))

	var resp photosResponse
	if err := c.call(ctx, "photos.get", params, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		return nil, fmt.Errorf("%w: photos.get response has no items", ErrUpstream)
	}

	logger.FromContext(ctx).Debug().
		Int64("owner_id", ownerID).
		Str("album_id", albumID).
		Int("total", resp.Count).
		Int("fetched", len(resp.Items)).
		Msg("Fetched photo listing")

	return resp.Items, nil
}

// ResolveUser turns a numeric id or a screen name into a user id.
func (c *Client) ResolveUser(ctx context.Context, idOrName string) (int64, error) {
	idOrName = strings.TrimSpace(idOrName)
	idOrName = strings.TrimPrefix(idOrName, "@")
	if idOrName == "" {
		return 0, ErrUserNotFound
	}
	if id, err := strconv.ParseInt(idOrName, 10, 64); err == nil {
		return id, nil
	}
	if strings.HasPrefix(idOrName, "id") {
		if id, err := strconv.ParseInt(idOrName[2:], 10, 64); err == nil {
			return id, nil
		}
	}

	params := url.Values{}
	params.Set("screen_name", idOrName)

	var raw json.RawMessage
	if err := c.call(ctx, "utils.resolveScreenName", params, &raw); err != nil {
		return 0, err
	}

	// An unknown name comes back as an empty list.
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return 0, fmt.Errorf("%w: %s", ErrUserNotFound, idOrName)
	}

	var obj resolvedObject
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return 0, fmt.Errorf("%w: decode resolveScreenName: %v", ErrUpstream, err)
	}
	if obj.Type != "user" {
		return 0, fmt.Errorf("%w: %s is a %s", ErrUserNotFound, idOrName, obj.Type)
	}
	return obj.ObjectID, nil
}

type envelope struct {
	Response json.RawMessage `json:"response"`
	Error    *APIError       `json:"error"`
}

func (c *Client) call(ctx context.Context, method string, params url.Values, out interface{}) error {
	if c == nil || c.http == nil {
		return ErrNotInitialized
	}
	if strings.TrimSpace(c.token) == "" {
		return fmt.Errorf("vk config error: token is empty")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("vk %s: %w", method, err)
	}

	params.Set("access_token", c.token)
	params.Set("v", c.version)

	endpoint := c.baseURL + "/method/" + method + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("vk %s request error: %w", method, err)
	}
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return httpx.ClassifyRequestError(ctx, "vk "+method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s http status=%d body=%s", ErrUpstream, method, resp.StatusCode, httpx.ReadErrorBody(resp.Body))
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: decode %s envelope: %v", ErrUpstream, method, err)
	}
	if env.Error != nil {
		return fmt.Errorf("vk %s: %w", method, env.Error)
	}
	if len(env.Response) == 0 {
		return fmt.Errorf("%w: %s envelope has no response", ErrUpstream, method)
	}

	if raw, ok := out.(*json.RawMessage); ok {
		*raw = env.Response
		return nil
	}
	if err := json.Unmarshal(env.Response, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrUpstream, method, err)
	}
	return nil
}
