package logos

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledmatrix/scorebug/pkg/models"
)

func TestEnsureDownloadsMissingLogo(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	dl := NewDownloader(t.TempDir())
	logo := models.Logo{Abbr: "DAL", Path: dl.Path("nfl", "DAL"), URL: server.URL}

	_, ok := dl.Ensure(logo)
	assert.False(t, ok, "first call misses and starts a download")
	dl.Wait()

	path, ok := dl.Ensure(logo)
	require.True(t, ok, "file is on disk after the download")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestEnsureFailedDownloadLeavesNoFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	dl := NewDownloader(t.TempDir())
	logo := models.Logo{Abbr: "PHI", Path: dl.Path("nfl", "PHI"), URL: server.URL}

	_, ok := dl.Ensure(logo)
	assert.False(t, ok)
	dl.Wait()

	_, err := os.Stat(logo.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestEnsureIgnoresIncompleteLogos(t *testing.T) {
	dl := NewDownloader(t.TempDir())

	_, ok := dl.Ensure(models.Logo{Abbr: "X"})
	assert.False(t, ok, "no path, nothing to do")

	_, ok = dl.Ensure(models.Logo{Abbr: "X", Path: dl.Path("nfl", "X")})
	assert.False(t, ok, "no URL, cannot download")
	dl.Wait()
}
