package images

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// uploadRequest builds a multipart request carrying one file under the
// "image" field.
func uploadRequest(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()

	r := httptest.NewRequest("POST", "/", &body)
	r.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := r.FormFile("image")
	if err != nil {
		t.Fatalf("failed to read form file: %v", err)
	}
	t.Cleanup(func() { file.Close() })
	return file, header
}

func TestStoreSave(t *testing.T) {
	store, err := NewStore(t.TempDir(), "/static/images", 1<<20)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	file, header := uploadRequest(t, "photo.PNG", []byte("fake image data"))

	url, err := store.Save(file, header)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(url, "/static/images/") {
		t.Errorf("url = %q, want /static/images/ prefix", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q, want lowercased .png extension", url)
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), filepath.Base(url)))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("stored content = %q, want original bytes", data)
	}
}

func TestStoreSaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewStore(t.TempDir(), "/static/images", 1<<20)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	fileA, headerA := uploadRequest(t, "same.jpg", []byte("a"))
	fileB, headerB := uploadRequest(t, "same.jpg", []byte("b"))

	urlA, err := store.Save(fileA, headerA)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	urlB, err := store.Save(fileB, headerB)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if urlA == urlB {
		t.Errorf("identical filenames should not collide: %q", urlA)
	}
}

func TestStoreSaveRejectsUnsupportedType(t *testing.T) {
	store, err := NewStore(t.TempDir(), "/static/images", 1<<20)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	file, header := uploadRequest(t, "payload.exe", []byte("nope"))

	if _, err := store.Save(file, header); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestStoreSaveRejectsOversized(t *testing.T) {
	store, err := NewStore(t.TempDir(), "/static/images", 4)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	file, header := uploadRequest(t, "big.png", []byte("more than four bytes"))

	if _, err := store.Save(file, header); err == nil {
		t.Error("expected oversized upload to be rejected")
	}
}

func TestStoreDelete(t *testing.T) {
	store, err := NewStore(t.TempDir(), "/static/images", 1<<20)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	file, header := uploadRequest(t, "photo.png", []byte("data"))
	url, err := store.Save(file, header)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Delete(url); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), filepath.Base(url))); !os.IsNotExist(err) {
		t.Error("file should be gone after delete")
	}

	// Deleting again is not an error
	if err := store.Delete(url); err != nil {
		t.Errorf("second Delete failed: %v", err)
	}
}

func TestStoreDeleteIgnoresExternalURLs(t *testing.T) {
	store, err := NewStore(t.TempDir(), "/static/images", 1<<20)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := store.Delete("https://example.com/some/image.png"); err != nil {
		t.Errorf("external URL should be ignored, got %v", err)
	}
	if err := store.Delete(""); err != nil {
		t.Errorf("empty URL should be ignored, got %v", err)
	}
}
