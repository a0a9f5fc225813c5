package fetch_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbridge/docbridge/pkg/docbridge/fetch"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetcher_Success(t *testing.T) {
	body := []byte("document payload")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	f := fetch.New(nil, testLogger())
	got, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestFetcher_ErrorStatuses(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}))
			defer srv.Close()

			f := fetch.New(nil, testLogger())
			_, err := f.Fetch(context.Background(), srv.URL)
			require.Error(t, err)

			var dlErr *fetch.DownloadError
			require.ErrorAs(t, err, &dlErr)
			assert.Equal(t, status, dlErr.StatusCode)
		})
	}
}

func TestFetcher_FollowsRedirectChain(t *testing.T) {
	body := []byte("behind three redirects")
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/a", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/b", http.StatusFound)
	})
	mux.HandleFunc("/b", func(w http.ResponseWriter, r *http.Request) {
		// Relative redirect must be resolved against the current URL.
		http.Redirect(w, r, "c", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/c", func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	})

	f := fetch.New(nil, testLogger())
	got, err := f.Fetch(context.Background(), srv.URL+"/a")
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestFetcher_RedirectLoopIsCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path, http.StatusFound)
	}))
	defer srv.Close()

	f := fetch.New(nil, testLogger())
	_, err := f.Fetch(context.Background(), srv.URL+"/loop")
	require.ErrorIs(t, err, fetch.ErrTooManyRedirects)
}

func TestFetcher_RedirectWithoutLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusFound) // 3xx with no Location header
	}))
	defer srv.Close()

	f := fetch.New(nil, testLogger())
	_, err := f.Fetch(context.Background(), srv.URL)

	var dlErr *fetch.DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, http.StatusFound, dlErr.StatusCode)
}

func TestFetcher_InvalidURL(t *testing.T) {
	f := fetch.New(nil, testLogger())
	_, err := f.Fetch(context.Background(), "://not-a-url")
	require.Error(t, err)
}

func TestFetcher_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := fetch.New(nil, testLogger())
	_, err := f.Fetch(ctx, srv.URL)
	require.Error(t, err)
}
