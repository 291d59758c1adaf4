package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/sheetprint/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestFileCacheDir(t *testing.T) {
	if got, _ := fileCacheDir(config.Cache{Dir: "/srv/ranges"}); got != "/srv/ranges" {
		t.Errorf("fileCacheDir() = %q, want the configured dir", got)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if got, _ := fileCacheDir(config.Cache{}); got != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("fileCacheDir() = %q, want the XDG default", got)
	}
}
