package media

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(t.TempDir(), map[AssetType]string{
		AssetTypeCapture: "captures",
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

// encodeTestFrame builds a small PNG and returns it as a webcam-style data URL.
func encodeTestFrame(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test frame: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestArchiveCaptureStoresJpeg(t *testing.T) {
	store := newTestStore(t)
	processor := NewProcessor(store)

	relPath, err := processor.ArchiveCapture(encodeTestFrame(t))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(relPath, "captures/") {
		t.Errorf("expected capture under captures/, got %s", relPath)
	}
	if !strings.HasSuffix(relPath, CaptureFileExtension) {
		t.Errorf("expected %s extension, got %s", CaptureFileExtension, relPath)
	}

	fullPath, err := store.GetFullPath(relPath)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	info, err := os.Stat(fullPath)
	if err != nil {
		t.Fatalf("expected stored file, got %v", err)
	}
	if info.Size() == 0 {
		t.Error("stored capture is empty")
	}
}

func TestArchiveCaptureRejectsGarbage(t *testing.T) {
	processor := NewProcessor(newTestStore(t))

	if _, err := processor.ArchiveCapture("data:image/png;base64,!!!not-base64!!!"); err == nil {
		t.Error("expected an error for invalid base64 payload")
	}
	valid := base64.StdEncoding.EncodeToString([]byte("not an image"))
	if _, err := processor.ArchiveCapture("data:image/png;base64," + valid); err == nil {
		t.Error("expected an error for non-image payload")
	}
}

func TestGetFullPathRejectsTraversal(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.GetFullPath("../outside.txt"); err == nil {
		t.Error("expected an error for path traversal")
	}
}

func TestSaveGeneratesUniqueFilenames(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save(AssetTypeCapture, "", ".jpg", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := store.Save(AssetTypeCapture, "", ".jpg", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first == second {
		t.Errorf("expected distinct generated filenames, got %s twice", first)
	}
	if filepath.Ext(first) != ".jpg" {
		t.Errorf("expected .jpg extension, got %s", first)
	}
}
