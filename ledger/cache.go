package ledger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImportToCache copies a picked source stream into cacheDir and returns the
// local path the core can open. The platform picker (desktop dialog, mobile
// document provider) stays outside; it only needs to hand over a reader.
// An existing file with the same name is left alone and a fresh name is
// chosen instead.
func ImportToCache(src io.Reader, cacheDir, name string) (string, error) {
	if strings.TrimSpace(cacheDir) == "" {
		return "", fmt.Errorf("cacheDir is empty")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", err
	}

	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "imported.xlsx"
	}
	dstPath := filepath.Join(cacheDir, base)
	if _, err := os.Stat(dstPath); err == nil {
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		dstPath = filepath.Join(cacheDir, fmt.Sprintf("%s-%d%s", stem, time.Now().UnixNano(), ext))
	}

	out, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	_, copyErr := io.Copy(out, src)
	closeErr := out.Close()
	if copyErr != nil {
		_ = os.Remove(dstPath)
		return "", copyErr
	}
	if closeErr != nil {
		_ = os.Remove(dstPath)
		return "", closeErr
	}
	return dstPath, nil
}
