package vk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

const photosBody = `{"response":{"count":2,"items":[
	{"id":1,"owner_id":42,"date":100,"likes":{"count":3,"user_likes":0},
	 "sizes":[{"type":"s","url":"https://cdn/1s.jpg","width":75,"height":50},{"type":"z","url":"https://cdn/1z.jpg","width":1080,"height":720}]},
	{"id":2,"owner_id":42,"date":200,"likes":{"count":5},
	 "sizes":[{"type":"y","url":"https://cdn/2y.jpg","width":807,"height":538}]}
]}}`

func newTestServer(t *testing.T, method string, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/method/"+method, h)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:   baseURL,
		Token:     "vk-token",
		Version:   "5.131",
		Timeout:   time.Second,
		RateLimit: 100,
		UserAgent: "photobackup-test",
	})
}

func TestListProfilePhotosSuccess(t *testing.T) {
	server := newTestServer(t, "photos.get", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		checks := map[string]string{
			"access_token": "vk-token",
			"v":            "5.131",
			"owner_id":     "42",
			"album_id":     "profile",
			"extended":     "1",
			"count":        "5",
		}
		for k, want := range checks {
			if got := q.Get(k); got != want {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte("bad " + k + "=" + got))
				return
			}
		}
		if r.Header.Get("User-Agent") != "photobackup-test" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("invalid user agent"))
			return
		}
		_, _ = w.Write([]byte(photosBody))
	})

	photos, err := newTestClient(server.URL).ListProfilePhotos(context.Background(), 42, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(photos))
	}

	first := photos[0]
	if first.Likes == nil || first.Likes.Count == nil || *first.Likes.Count != 3 {
		t.Fatalf("expected likes.count=3, got %+v", first.Likes)
	}
	if first.Date == nil || *first.Date != 100 {
		t.Fatalf("expected date=100, got %v", first.Date)
	}
	if last := first.Sizes[len(first.Sizes)-1]; last.Type != "z" || last.URL != "https://cdn/1z.jpg" {
		t.Fatalf("unexpected last size: %+v", last)
	}
}

func TestListProfilePhotosAPIError(t *testing.T) {
	server := newTestServer(t, "photos.get", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"error_code":5,"error_msg":"User authorization failed: invalid access_token (4)."}}`))
	})

	_, err := newTestClient(server.URL).ListProfilePhotos(context.Background(), 42, "profile", 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != 5 {
		t.Fatalf("expected APIError code 5, got %v", err)
	}
}

func TestListProfilePhotosMalformedEnvelope(t *testing.T) {
	bodies := map[string]string{
		"not json":      `<html>oops</html>`,
		"no response":   `{}`,
		"null items":    `{"response":{"count":0}}`,
		"null response": `{"response":null}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			server := newTestServer(t, "photos.get", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			_, err := newTestClient(server.URL).ListProfilePhotos(context.Background(), 1, "profile", 5)
			if !errors.Is(err, ErrUpstream) {
				t.Fatalf("expected ErrUpstream, got %v", err)
			}
		})
	}
}

func TestListProfilePhotosHTTPErrorIncludesBody(t *testing.T) {
	server := newTestServer(t, "photos.get", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	})

	_, err := newTestClient(server.URL).ListProfilePhotos(context.Background(), 1, "profile", 5)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "status=502") || !strings.Contains(err.Error(), "body=bad gateway") {
		t.Fatalf("expected status and body in error, got %v", err)
	}
}

func TestListProfilePhotosTimeoutClassified(t *testing.T) {
	server := newTestServer(t, "photos.get", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(photosBody))
	})

	client := NewClient(Config{BaseURL: server.URL, Token: "t", Version: "5.131", Timeout: 20 * time.Millisecond})
	_, err := client.ListProfilePhotos(context.Background(), 1, "profile", 5)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "vk photos.get timeout") {
		t.Fatalf("expected timeout classification, got %v", err)
	}
}

func TestResolveUser(t *testing.T) {
	server := newTestServer(t, "utils.resolveScreenName", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("screen_name") {
		case "durov":
			_, _ = w.Write([]byte(`{"response":{"type":"user","object_id":1}}`))
		case "apiclub":
			_, _ = w.Write([]byte(`{"response":{"type":"group","object_id":1}}`))
		default:
			_, _ = w.Write([]byte(`{"response":[]}`))
		}
	})
	client := newTestClient(server.URL)
	ctx := context.Background()

	cases := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{in: "12345", want: 12345},
		{in: "id777", want: 777},
		{in: "@durov", want: 1},
		{in: "apiclub", wantErr: ErrUserNotFound},
		{in: "nobody-here", wantErr: ErrUserNotFound},
		{in: "  ", wantErr: ErrUserNotFound},
	}
	for _, tc := range cases {
		got, err := client.ResolveUser(ctx, tc.in)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("%q: expected %v, got %v", tc.in, tc.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: expected %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestCallRequiresToken(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Version: "5.131"})
	_, err := client.ListProfilePhotos(context.Background(), 1, "profile", 5)
	if err == nil || !strings.Contains(err.Error(), "token is empty") {
		t.Fatalf("expected token config error, got %v", err)
	}
}
