package cache_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/blackwell-systems/winefonts/internal/cache"
	"github.com/blackwell-systems/winefonts/internal/catalog"
	"github.com/blackwell-systems/winefonts/internal/util"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

func download(url, hash string, size float64) catalog.Download {
	return catalog.Download{
		ID:       uuid.MustParse("6f1c1a36-0b0e-4a55-9a39-0c3f6f6a0d01"),
		URL:      catalog.MustParseURL(url),
		Hash:     hash,
		FileSize: size,
	}
}

func sha(s string) string {
	h, _ := util.SHA256Reader(strings.NewReader(s))
	return h
}

func TestPath_Layout(t *testing.T) {
	m := cache.New("/base")
	d := download("https://example.com/fonts/arial32.exe", "", 0)
	want := filepath.Join("/base", "downloads", d.ID.String(), "arial32.exe")
	if got := m.Path(d); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestPath_NoBasename(t *testing.T) {
	m := cache.New("/base")
	d := download("https://example.com/", "", 0)
	if got := filepath.Base(m.Path(d)); got != "download" {
		t.Errorf("basename = %q, want download", got)
	}
}

func TestCatalogPath(t *testing.T) {
	if got := cache.New("/base").CatalogPath(); got != filepath.Join("/base", "catalog", "index.json") {
		t.Errorf("CatalogPath = %q", got)
	}
}

func TestExists_False(t *testing.T) {
	m := cache.New("/no/such/base")
	if m.Exists(download("https://x/y.zip", "", 0)) {
		t.Error("Exists() should be false for missing file")
	}
}

func TestStore_NoChecks(t *testing.T) {
	m := cache.New(t.TempDir())
	d := download("https://x/y.zip", "opaque-hash", 0)

	path, err := m.Store(d, strings.NewReader("test content for cache"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !m.Exists(d) {
		t.Error("Exists() false after successful Store")
	}
	if path != m.Path(d) {
		t.Errorf("Store path = %q, want %q", path, m.Path(d))
	}
}

func TestStore_WithCorrectChecksumAndSize(t *testing.T) {
	m := cache.New(t.TempDir())
	body := "hello world"
	d := download("https://x/y.cab", strings.ToUpper(sha(body)), float64(len(body)))
	if _, err := m.Store(d, strings.NewReader(body)); err != nil {
		t.Fatalf("Store: %v", err)
	}
}

func TestStore_WrongChecksumFails(t *testing.T) {
	m := cache.New(t.TempDir())
	d := download("https://x/y.cab", strings.Repeat("0", 64), 0)
	_, err := m.Store(d, strings.NewReader("some data"))
	if !errors.Is(err, cache.ErrChecksumMismatch) {
		t.Fatalf("err = %v, want ErrChecksumMismatch", err)
	}
	if m.Exists(d) {
		t.Error("failed Store left a cached file behind")
	}
	if _, err := os.Stat(m.Path(d) + ".tmp"); !os.IsNotExist(err) {
		t.Error("failed Store left a temp file behind")
	}
}

func TestStore_WrongSizeFails(t *testing.T) {
	m := cache.New(t.TempDir())
	d := download("https://x/y.cab", "", 1024)
	if _, err := m.Store(d, strings.NewReader("short")); !errors.Is(err, cache.ErrSizeMismatch) {
		t.Fatalf("err = %v, want ErrSizeMismatch", err)
	}
}

func TestStore_Concurrent(t *testing.T) {
	m := cache.New(t.TempDir())
	body := "same bytes"
	d := download("https://x/y.cab", sha(body), float64(len(body)))

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Store(d, strings.NewReader(body))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("concurrent Store: %v", err)
		}
	}
	if err := cache.VerifyDownload(m.Path(d), d); err != nil {
		t.Errorf("cached file corrupt: %v", err)
	}
}

func TestStoreCatalog(t *testing.T) {
	m := cache.New(t.TempDir())
	path, err := m.StoreCatalog(strings.NewReader(`{"version":"1.0.0"}`))
	if err != nil {
		t.Fatalf("StoreCatalog: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != `{"version":"1.0.0"}` {
		t.Errorf("catalog content = %q, %v", got, err)
	}
}

func TestRemove(t *testing.T) {
	m := cache.New(t.TempDir())
	d := download("https://x/y.zip", "", 0)
	if _, err := m.Store(d, strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}
	if err := m.Remove(d); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if m.Exists(d) {
		t.Error("Exists() true after Remove")
	}
	if err := m.Remove(d); err != nil {
		t.Errorf("Remove of missing entry: %v", err)
	}
}

func TestRemove_WaitsForLock(t *testing.T) {
	base := t.TempDir()
	m := cache.New(base)
	d := download("https://x/y.zip", "", 0)
	if _, err := m.Store(d, strings.NewReader("x")); err != nil {
		t.Fatal(err)
	}

	other := flock.New(filepath.Join(base, ".lock"))
	if err := other.Lock(); err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() { done <- m.Remove(d) }()

	select {
	case err := <-done:
		t.Fatalf("Remove returned while cache was locked: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
	if !m.Exists(d) {
		t.Error("entry removed while cache was locked")
	}

	if err := other.Unlock(); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Remove: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Remove did not finish after unlock")
	}
	if m.Exists(d) {
		t.Error("Exists() true after Remove")
	}
}

func TestVerifyFile_EmptyExpectedSkips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v")
	_ = os.WriteFile(path, []byte("verify me"), 0600)
	if err := cache.VerifyFile(path, ""); err != nil {
		t.Errorf("VerifyFile with empty expected should always pass: %v", err)
	}
	if err := cache.VerifyFile(path, sha("verify me")); err != nil {
		t.Errorf("VerifyFile with correct hash: %v", err)
	}
}

func TestVerifyFile_Mismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v")
	_ = os.WriteFile(path, []byte("data"), 0600)
	if err := cache.VerifyFile(path, "badhash"); !errors.Is(err, cache.ErrChecksumMismatch) {
		t.Errorf("VerifyFile with wrong hash: %v", err)
	}
}

func TestUsageAndClear(t *testing.T) {
	m := cache.New(t.TempDir())
	files, size, err := m.Usage()
	if err != nil || files != 0 || size != 0 {
		t.Fatalf("empty cache Usage = %d, %d, %v", files, size, err)
	}

	d := download("https://x/y.zip", "", 0)
	if _, err := m.Store(d, strings.NewReader("12345")); err != nil {
		t.Fatal(err)
	}
	if _, err := m.StoreCatalog(strings.NewReader(`{}`)); err != nil {
		t.Fatal(err)
	}
	files, size, err = m.Usage()
	if err != nil || files != 1 || size != 5 {
		t.Errorf("Usage = %d, %d, %v; want 1, 5", files, size, err)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if m.Exists(d) {
		t.Error("download still cached after Clear")
	}
	if _, err := os.Stat(m.CatalogPath()); err != nil {
		t.Errorf("Clear should keep the catalog: %v", err)
	}
}
