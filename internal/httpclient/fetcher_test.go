package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/gleaner/internal/common"
	"github.com/ternarybob/gleaner/internal/interfaces"
)

func newTestFetcher() *Fetcher {
	return NewFetcher(&common.FetchConfig{
		Timeout:   "2s",
		UserAgent: "gleaner-test",
	}, arbor.NewLogger())
}

func TestFetchReturnsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gleaner-test", r.Header.Get("User-Agent"))
		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	body, err := newTestFetcher().Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", string(body))
}

func TestFetchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)

	var netErr *interfaces.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusNotFound, netErr.Status)
}

func TestFetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)

	var netErr *interfaces.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Error(t, netErr.Err)
}

func TestFetchInsecureHostUsesDedicatedClient(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("self-signed ok"))
	}))
	defer server.Close()

	// The default client rejects the self-signed certificate.
	_, err := newTestFetcher().Fetch(context.Background(), server.URL)
	assert.Error(t, err)

	fetcher := NewFetcher(&common.FetchConfig{
		Timeout:       "2s",
		InsecureHosts: []string{"127.0.0.1"},
	}, arbor.NewLogger())

	body, err := fetcher.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "self-signed ok", string(body))
}
