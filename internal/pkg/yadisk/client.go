package yadisk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mwork/photobackup/internal/pkg/httpx"
)

// errFolderExists is the error code Yandex Disk returns with 409 when the
// folder is already present.
const errFolderExists = "DiskPathPointsToExistentDirectoryError"

var ErrNotInitialized = errors.New("yadisk client is not initialized")

// APIError is a non-success response of the Disk REST API.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Description
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("yadisk status=%d error=%s message=%s", e.StatusCode, e.Code, msg)
}

// Config holds Yandex Disk client configuration
type Config struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	UserAgent string
}

// Client represents the Yandex Disk REST client.
type Client struct {
	baseURL string
	token   string
	ua      string
	http    *http.Client
}

// NewClient creates a new Yandex Disk client.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		ua:      cfg.UserAgent,
		http:    httpx.NewClient(cfg.Timeout),
	}
}

// CreateFolder creates a folder. It reports alreadyExists when the API
// answers 409 for an existing directory.
func (c *Client) CreateFolder(ctx context.Context, path string) (bool, error) {
	params := url.Values{}
	params.Set("path", path)

	resp, err := c.do(ctx, http.MethodPut, "/v1/disk/resources", params, "yadisk create folder")
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusCreated {
		return false, nil
	}

	apiErr := decodeError(resp)
	if resp.StatusCode == http.StatusConflict && apiErr.Code == errFolderExists {
		return true, nil
	}
	return false, apiErr
}

// UploadFromURL asks the disk to download sourceURL into path. The disk
// accepts the job with 202 and fetches the file asynchronously.
func (c *Client) UploadFromURL(ctx context.Context, path, sourceURL string) error {
	params := url.Values{}
	params.Set("url", sourceURL)
	params.Set("path", path)
	params.Set("disable_redirects", "true")

	resp, err := c.do(ctx, http.MethodPost, "/v1/disk/resources/upload", params, "yadisk upload")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusAccepted {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return decodeError(resp)
}

func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, op string) (*http.Response, error) {
	if c == nil || c.http == nil {
		return nil, ErrNotInitialized
	}
	if strings.TrimSpace(c.token) == "" {
		return nil, fmt.Errorf("%s config error: token is empty", op)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s request error: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "OAuth "+c.token)
	if c.ua != "" {
		req.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, httpx.ClassifyRequestError(ctx, op, err)
	}
	return resp, nil
}

func decodeError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body := httpx.ReadErrorBody(resp.Body)
	if err := json.Unmarshal([]byte(body), apiErr); err != nil {
		apiErr.Message = strings.TrimSpace(body)
	}
	apiErr.StatusCode = resp.StatusCode
	return apiErr
}
