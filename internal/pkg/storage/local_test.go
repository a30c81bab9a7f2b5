package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/smithy-go"
)

func TestLocalStoragePutExists(t *testing.T) {
	t.Parallel()

	st, err := NewLocalStorage(t.TempDir(), "/media")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	ctx := context.Background()

	exists, err := st.Exists(ctx, "a/b.jpg")
	if err != nil || exists {
		t.Fatalf("expected missing key, exists=%v err=%v", exists, err)
	}

	if err := st.Put(ctx, "a/b.jpg", bytes.NewReader([]byte("hello")), "image/jpeg"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	exists, err = st.Exists(ctx, "a/b.jpg")
	if err != nil || !exists {
		t.Fatalf("expected stored key, exists=%v err=%v", exists, err)
	}

	if got := st.GetURL("a/b.jpg"); got != "/media/a/b.jpg" {
		t.Fatalf("unexpected url %s", got)
	}
}

func TestLocalStoragePutOverwrites(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	st, err := NewLocalStorage(base, "")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	ctx := context.Background()

	_ = st.Put(ctx, "x.jpg", strings.NewReader("first"), "image/jpeg")
	if err := st.Put(ctx, "x.jpg", strings.NewReader("second"), "image/jpeg"); err != nil {
		t.Fatalf("Put: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(base, "x.jpg"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected overwritten content, got %q", data)
	}
	if !strings.HasPrefix(st.GetURL("x.jpg"), "file://") {
		t.Fatalf("expected file url, got %s", st.GetURL("x.jpg"))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestLocalStoragePutFailureLeavesNothing(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	st, _ := NewLocalStorage(base, "/media")

	err := st.Put(context.Background(), "d/x.jpg", io.MultiReader(strings.NewReader("part"), failingReader{}), "image/jpeg")
	if err == nil {
		t.Fatal("expected write error")
	}
	entries, _ := os.ReadDir(filepath.Join(base, "d"))
	if len(entries) != 0 {
		t.Fatalf("expected no leftovers, got %d entries", len(entries))
	}
}

func TestLocalStorageRejectsEscapingKeys(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	st, _ := NewLocalStorage(filepath.Join(base, "root"), "/media")

	// Keys are rooted, so ".." cannot climb out of the base path.
	if err := st.Put(context.Background(), "../outside.jpg", strings.NewReader("x"), "image/jpeg"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "outside.jpg")); !os.IsNotExist(err) {
		t.Fatalf("file escaped the base path")
	}
	if _, err := os.Stat(filepath.Join(base, "root", "outside.jpg")); err != nil {
		t.Fatalf("expected file inside base path: %v", err)
	}
}

func TestLocalStorageMakeFolderOnFile(t *testing.T) {
	t.Parallel()

	st, _ := NewLocalStorage(t.TempDir(), "/media")
	ctx := context.Background()
	_ = st.Put(ctx, "taken", strings.NewReader("x"), "text/plain")

	if _, err := st.MakeFolder(ctx, "taken"); err == nil {
		t.Fatal("expected error when a file occupies the folder path")
	}
}

func TestValidatePhoto(t *testing.T) {
	t.Parallel()

	if _, _, err := ValidatePhoto(bytes.NewReader(nil), 10); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
	if _, _, err := ValidatePhoto(bytes.NewReader(make([]byte, 11)), 10); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if _, _, err := ValidatePhoto(strings.NewReader("plain text body"), 100); !errors.Is(err, ErrInvalidMimeType) {
		t.Fatalf("expected ErrInvalidMimeType, got %v", err)
	}

	jpegHeader := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	_, mime, err := ValidatePhoto(bytes.NewReader(jpegHeader), 100)
	if err != nil || mime != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %q err=%v", mime, err)
	}
}

func TestS3ErrorHelpers(t *testing.T) {
	t.Parallel()

	notFound := &smithy.GenericAPIError{Code: "NotFound", Message: "Not Found"}
	if !isNotFound(notFound) {
		t.Fatal("expected NotFound to be recognised")
	}
	if isNotFound(errors.New("plain")) {
		t.Fatal("plain errors are not NotFound")
	}

	denied := &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"}
	err := describeS3Error(denied)
	if !strings.Contains(err.Error(), "AccessDenied: Access Denied") {
		t.Fatalf("expected code and message, got %v", err)
	}
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("described error must keep the API error")
	}
}
