// Package logos lazily mirrors team logos to local disk. The render path
// only ever checks for a file; downloads happen in the background so a
// missing logo never stalls a frame.
package logos

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ledmatrix/scorebug/pkg/models"
)

const downloadTimeout = 15 * time.Second

// Downloader fetches missing logo files on demand.
type Downloader struct {
	dir    string
	client *http.Client

	// inflight dedups concurrent requests for the same file.
	inflight map[string]bool
	mu       sync.Mutex

	wg sync.WaitGroup
}

// NewDownloader creates a downloader rooted at dir.
func NewDownloader(dir string) *Downloader {
	return &Downloader{
		dir:      dir,
		client:   &http.Client{Timeout: downloadTimeout},
		inflight: make(map[string]bool),
	}
}

// Path returns where a logo for league/abbr lives on disk.
func (d *Downloader) Path(league, abbr string) string {
	return filepath.Join(d.dir, league, abbr+".png")
}

// Ensure returns the local path if the logo file exists. When it does
// not, a background download is kicked off (at most one per file) and
// ok is false; a later call picks the file up.
func (d *Downloader) Ensure(logo models.Logo) (path string, ok bool) {
	if logo.Path == "" {
		return "", false
	}
	if _, err := os.Stat(logo.Path); err == nil {
		return logo.Path, true
	}
	if logo.URL == "" {
		return "", false
	}

	d.mu.Lock()
	if d.inflight[logo.Path] {
		d.mu.Unlock()
		return "", false
	}
	d.inflight[logo.Path] = true
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			d.mu.Lock()
			delete(d.inflight, logo.Path)
			d.mu.Unlock()
		}()
		if err := d.download(logo.URL, logo.Path); err != nil {
			log.Printf("[logos] download %s failed: %v", logo.Abbr, err)
			return
		}
		log.Printf("[logos] downloaded %s", logo.Abbr)
	}()
	return "", false
}

// Wait blocks until in-flight downloads finish (used by tests and shutdown).
func (d *Downloader) Wait() {
	d.wg.Wait()
}

func (d *Downloader) download(url, dest string) error {
	resp, err := d.client.Get(url)
	if err != nil {
		return fmt.Errorf("fetch logo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch logo: status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create logo dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".logo-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write logo: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close logo file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("move logo into place: %w", err)
	}
	return nil
}
