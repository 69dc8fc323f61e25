package scanner

import (
	"bytes"
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/gleaner/internal/common"
	"github.com/ternarybob/gleaner/internal/interfaces"
)

// Service discovers candidate item identifiers from paginated index pages.
type Service struct {
	fetcher      interfaces.Fetcher
	linkSelector string
	logger       arbor.ILogger
}

// Compile-time assertion
var _ interfaces.ListScanner = (*Service)(nil)

// NewService creates a list scanner. linkSelector is the source-specific
// structural signature of item anchors (e.g. "h1#list a[href]").
func NewService(fetcher interfaces.Fetcher, linkSelector string, logger arbor.ILogger) *Service {
	return &Service{
		fetcher:      fetcher,
		linkSelector: linkSelector,
		logger:       logger,
	}
}

// Discover fetches index pages 1..pages and returns matching identifiers in
// page-encounter order, deduplicated, relative links resolved, filter
// applied. Page 1 failing is a precondition failure; a later page failing
// logs a warning and the scan continues.
func (s *Service) Discover(ctx context.Context, baseURL string, pages int, filter interfaces.FilterFunc) ([]string, error) {
	var ids []string
	seen := make(map[string]bool)

	for page := 1; page <= pages; page++ {
		pageURL := common.PageURL(baseURL, page)

		body, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			s.logger.Warn().Err(err).Str("url", pageURL).Msg("Index page fetch failed, continuing scan")
			continue
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			if page == 1 {
				return nil, err
			}
			s.logger.Warn().Err(err).Str("url", pageURL).Msg("Index page parse failed, continuing scan")
			continue
		}

		doc.Find(s.linkSelector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" {
				return
			}

			resolved := common.ResolveURL(pageURL, href)
			if resolved == "" || seen[resolved] {
				return
			}
			if filter != nil && !filter(resolved) {
				return
			}

			seen[resolved] = true
			ids = append(ids, resolved)
		})
	}

	s.logger.Info().Str("base_url", baseURL).Int("pages", pages).Int("found", len(ids)).Msg("Index scan complete")
	return ids, nil
}
