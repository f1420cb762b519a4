// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/pdiddy/lunch-menu/pkg/types"
)

const menuPage = `<html><body>
<font class="wsw-02">1. Svíčková 89,-</font>
<font class="wsw-02">2. Guláš</font>
</body></html>`

func testConfig() types.HTTPConfig {
	return types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "lunch-menu-test/1.0"}
}

func TestHTTPFetcher_Success(t *testing.T) {
	headers := make(chan http.Header, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(menuPage))
	}))
	defer ts.Close()

	doc, err := NewHTTPFetcher(testConfig()).Fetch(context.Background(), ts.URL)
	require.NoError(t, err)

	h := <-headers
	assert.Equal(t, "lunch-menu-test/1.0", h.Get("User-Agent"))
	assert.Contains(t, h.Get("Accept"), "text/html")
	assert.Equal(t, []string{"1. Svíčková 89,-", "2. Guláš"}, doc.FindAll("font.wsw-02"))
}

func TestHTTPFetcher_DecodesServerCharset(t *testing.T) {
	body, err := charmap.Windows1250.NewEncoder().String(menuPage)
	require.NoError(t, err)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=windows-1250")
		w.Write([]byte(body))
	}))
	defer ts.Close()

	doc, err := NewHTTPFetcher(testConfig()).Fetch(context.Background(), ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "1. Svíčková 89,-", doc.FindAll("font.wsw-02")[0])
}

func TestHTTPFetcher_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusTooManyRequests} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var calls int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(status)
			}))
			defer ts.Close()

			_, err := NewHTTPFetcher(testConfig()).Fetch(context.Background(), ts.URL)
			require.Error(t, err)

			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, status, fe.StatusCode)
			assert.Equal(t, ts.URL, fe.URL)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retry expected")
		})
	}
}

func TestHTTPFetcher_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := NewHTTPFetcher(testConfig()).Fetch(context.Background(), url)
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fe.StatusCode)
	assert.NotNil(t, fe.Unwrap())
}

func TestHTTPFetcher_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewHTTPFetcher(testConfig()).Fetch(ctx, ts.URL)
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchError_Message(t *testing.T) {
	assert.Equal(t, "fetching http://x: HTTP 503", (&FetchError{URL: "http://x", StatusCode: 503}).Error())
	assert.Equal(t, "fetching http://x: boom", (&FetchError{URL: "http://x", Err: errors.New("boom")}).Error())
}

func TestFileFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(menuPage), 0o644))

	doc, err := FileFetcher{Path: path}.Fetch(context.Background(), "ignored")
	require.NoError(t, err)
	assert.Len(t, doc.FindAll("font.wsw-02"), 2)

	_, err = FileFetcher{Path: filepath.Join(t.TempDir(), "nope.html")}.Fetch(context.Background(), "")
	var fe *FetchError
	assert.ErrorAs(t, err, &fe)
}
