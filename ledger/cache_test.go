package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImportToCache_EmptyDirErrors(t *testing.T) {
	if _, err := ImportToCache(strings.NewReader("x"), "", "a.xlsx"); err == nil {
		t.Fatal("expected error for empty cacheDir")
	}
}

func TestImportToCache_RoundTrip(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "cache")
	path, err := ImportToCache(strings.NewReader("payload"), cache, "assets.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "assets.xlsx" {
		t.Fatalf("unexpected name: %q", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "payload" {
		t.Fatalf("unexpected content: %q", string(b))
	}
}

func TestImportToCache_AvoidsNameCollision(t *testing.T) {
	cache := t.TempDir()
	if err := os.WriteFile(filepath.Join(cache, "assets.xlsx"), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, err := ImportToCache(strings.NewReader("payload"), cache, "assets.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) == "assets.xlsx" {
		t.Fatalf("expected collision-avoiding name, got %q", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "assets-") {
		t.Fatalf("expected collision-avoiding suffix, got %q", path)
	}
	b, err := os.ReadFile(filepath.Join(cache, "assets.xlsx"))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "existing" {
		t.Fatalf("existing file was clobbered: %q", string(b))
	}
}

func TestImportToCache_DefaultsName(t *testing.T) {
	path, err := ImportToCache(strings.NewReader("x"), t.TempDir(), "  ")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "imported.xlsx" {
		t.Fatalf("unexpected default name: %q", path)
	}
}
