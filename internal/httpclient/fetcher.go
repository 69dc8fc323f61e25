package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/gleaner/internal/common"
	"github.com/ternarybob/gleaner/internal/interfaces"
)

// Fetcher implements interfaces.Fetcher over net/http. Hosts listed in
// fetch.insecure_hosts get a TLS-verification-free client.
type Fetcher struct {
	client         *http.Client
	insecureClient *http.Client
	insecureHosts  map[string]bool
	userAgent      string
	logger         arbor.ILogger
}

// Compile-time assertion
var _ interfaces.Fetcher = (*Fetcher)(nil)

// NewFetcher creates a Fetcher from fetch configuration.
func NewFetcher(config *common.FetchConfig, logger arbor.ILogger) *Fetcher {
	timeout := config.FetchTimeout()
	hosts := make(map[string]bool, len(config.InsecureHosts))
	for _, h := range config.InsecureHosts {
		hosts[h] = true
	}
	return &Fetcher{
		client:         NewDefaultHTTPClient(timeout),
		insecureClient: NewInsecureHTTPClient(timeout),
		insecureHosts:  hosts,
		userAgent:      config.UserAgent,
		logger:         logger,
	}
}

// Fetch performs a GET and returns the response body. Non-2xx responses
// and transport failures surface as *interfaces.NetworkError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &interfaces.NetworkError{URL: rawURL, Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.clientFor(rawURL).Do(req)
	if err != nil {
		return nil, &interfaces.NetworkError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &interfaces.NetworkError{URL: rawURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &interfaces.NetworkError{URL: rawURL, Err: err}
	}

	f.logger.Debug().Str("url", rawURL).Int("bytes", len(body)).Msg("Fetched")
	return body, nil
}

func (f *Fetcher) clientFor(rawURL string) *http.Client {
	u, err := url.Parse(rawURL)
	if err == nil && f.insecureHosts[u.Hostname()] {
		return f.insecureClient
	}
	return f.client
}
