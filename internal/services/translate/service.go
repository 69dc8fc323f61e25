package translate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/gleaner/internal/common"
	"github.com/ternarybob/gleaner/internal/httpclient"
	"github.com/ternarybob/gleaner/internal/interfaces"
)

// Service implements interfaces.Translator against a translate endpoint.
// Translation failures are explicitly non-errors: any problem returns the
// original text unchanged.
type Service struct {
	client   *http.Client
	endpoint string
	target   string
	enabled  bool
	logger   arbor.ILogger
}

// Compile-time assertion
var _ interfaces.Translator = (*Service)(nil)

// NewService creates a translation service from configuration.
func NewService(config *common.TranslateConfig, logger arbor.ILogger) *Service {
	return &Service{
		client:   httpclient.NewDefaultHTTPClient(config.CallTimeout()),
		endpoint: config.Endpoint,
		target:   config.Target,
		enabled:  config.Enabled,
		logger:   logger,
	}
}

// Translate returns text translated to the configured target language, or
// the input unchanged when translation is disabled or fails.
func (s *Service) Translate(ctx context.Context, text string) string {
	if !s.enabled || text == "" {
		return text
	}

	translated, err := s.call(ctx, text)
	if err != nil {
		s.logger.Debug().Err(err).Msg("Translation failed, falling back to original text")
		return text
	}
	if translated == "" {
		return text
	}
	return translated
}

// call performs one translate request. The endpoint speaks the gtx wire
// format: a nested JSON array whose first element lists translated
// segments.
func (s *Service) call(ctx context.Context, text string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", s.target)
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &interfaces.NetworkError{URL: s.endpoint, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return parseSegments(body)
}

// parseSegments concatenates the translated segments from a gtx response:
// [[["translated","original",…],…],…]
func parseSegments(body []byte) (string, error) {
	var payload []interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", nil
	}

	segments, ok := payload[0].([]interface{})
	if !ok {
		return "", nil
	}

	var out string
	for _, seg := range segments {
		parts, ok := seg.([]interface{})
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			out += s
		}
	}
	return out, nil
}
