package fetcher

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(5*time.Second, 2*time.Second, "TestBot/1.0", logger)
}

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TestBot/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte("<html><body>ciao</body></html>"))
	}))
	defer srv.Close()

	result := testClient().Fetch(context.Background(), srv.URL)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.Contains(t, result.HTML, "ciao")
	assert.Greater(t, result.Bytes, 0)
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	result := testClient().Fetch(context.Background(), srv.URL)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.EqualValues(t, 3, calls.Load())
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	result := testClient().Fetch(context.Background(), srv.URL)
	assert.Equal(t, http.StatusNotFound, result.Status)
	assert.EqualValues(t, 1, calls.Load())
}

func TestFetchFailSoft(t *testing.T) {
	// Unreachable server: the result must still be usable downstream.
	result := testClient().Fetch(context.Background(), "http://127.0.0.1:1")
	assert.Equal(t, 0, result.Status)
	assert.Empty(t, result.HTML)
	assert.Zero(t, result.LoadTime, "retry time must not pass as a load time")
}

func TestExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		if r.URL.Path == "/sitemap.xml" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := testClient()
	assert.True(t, c.Exists(context.Background(), srv.URL+"/sitemap.xml"))
	assert.False(t, c.Exists(context.Background(), srv.URL+"/missing.xml"))
	assert.False(t, c.Exists(context.Background(), "http://127.0.0.1:1/x"))
}

func TestFetchSmallLimitsBody(t *testing.T) {
	big := make([]byte, 1<<20)
	for i := range big {
		big[i] = 'a'
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(big)
	}))
	defer srv.Close()

	body, status, err := testClient().FetchSmall(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.LessOrEqual(t, len(body), 512*1024)
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://example.it", NormalizeURL("example.it"))
	assert.Equal(t, "https://example.it", NormalizeURL("https://example.it/"))
	assert.Equal(t, "http://example.it", NormalizeURL("http://example.it"))
	assert.Equal(t, "https://example.it/menu", NormalizeURL("example.it/menu/"))
}
