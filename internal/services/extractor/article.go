package extractor

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/gleaner/internal/common"
	"github.com/ternarybob/gleaner/internal/interfaces"
	"github.com/ternarybob/gleaner/internal/models"
)

// ArticleService extracts one article detail page into a structured record:
// heading plus classified body blocks, each paired with its translation.
type ArticleService struct {
	fetcher    interfaces.Fetcher
	translator interfaces.Translator
	selectors  *common.SelectorConfig
	logger     arbor.ILogger
}

// Compile-time assertion
var _ interfaces.ArticleExtractor = (*ArticleService)(nil)

// NewArticleService creates an article extractor.
func NewArticleService(fetcher interfaces.Fetcher, translator interfaces.Translator, selectors *common.SelectorConfig, logger arbor.ILogger) *ArticleService {
	return &ArticleService{
		fetcher:    fetcher,
		translator: translator,
		selectors:  selectors,
		logger:     logger,
	}
}

// ExtractArticle fetches and parses one article page. Missing structural
// elements fail with *interfaces.ExtractionError; translation failures
// never fail extraction.
func (s *ArticleService) ExtractArticle(ctx context.Context, id string) (*models.ArticleRecord, error) {
	body, err := s.fetcher.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &interfaces.ExtractionError{URL: id, Missing: "parseable document"}
	}

	container := doc.Find(s.selectors.Container).First()
	if container.Length() == 0 {
		return nil, &interfaces.ExtractionError{URL: id, Missing: "main content container"}
	}

	heading := container.Find(s.selectors.Heading).First()
	if heading.Length() == 0 {
		return nil, &interfaces.ExtractionError{URL: id, Missing: "heading"}
	}

	headingText := strings.TrimSpace(heading.Text())
	record := &models.ArticleRecord{
		URL:     id,
		Heading: s.pair(ctx, headingText),
	}

	// Walk direct children in document order. Classification happens once
	// here; everything downstream consumes the block kind only.
	container.Children().Each(func(_ int, sel *goquery.Selection) {
		kind, ok := classifyElement(sel, s.selectors.Noise)
		if !ok {
			return
		}

		if kind == models.BlockListItem {
			sel.Find("li").Each(func(_ int, li *goquery.Selection) {
				item := strings.TrimSpace(li.Text())
				if item == "" {
					return
				}
				record.Blocks = append(record.Blocks, models.ArticleBlock{
					Kind: models.BlockListItem,
					Text: s.pair(ctx, "• "+item),
				})
			})
			return
		}

		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		record.Blocks = append(record.Blocks, models.ArticleBlock{
			Kind: kind,
			Text: s.pair(ctx, text),
		})
	})

	s.logger.Debug().Str("url", id).Int("blocks", len(record.Blocks)).Msg("Article extracted")
	return record, nil
}

// pair couples a text unit with its translated counterpart. The translator
// falls back to the original on failure, so both sides are always set.
func (s *ArticleService) pair(ctx context.Context, text string) models.TextPair {
	return models.TextPair{
		Original:   text,
		Translated: s.translator.Translate(ctx, text),
	}
}
