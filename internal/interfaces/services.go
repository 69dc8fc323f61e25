package interfaces

import (
	"context"

	"github.com/ternarybob/gleaner/internal/models"
)

// FilterFunc decides whether a discovered identifier is a candidate for
// processing (e.g. "path contains current year-month", "not an excluded
// category").
type FilterFunc func(id string) bool

// ListScanner discovers candidate item identifiers from index pages, in
// page-encounter order.
type ListScanner interface {
	Discover(ctx context.Context, baseURL string, pages int, filter FilterFunc) ([]string, error)
}

// ArticleExtractor parses one article detail page into a structured record.
type ArticleExtractor interface {
	ExtractArticle(ctx context.Context, id string) (*models.ArticleRecord, error)
}

// QuizExtractor parses one quiz detail page into question records. A
// malformed question fails alone; the rest of the page still extracts.
type QuizExtractor interface {
	ExtractQuiz(ctx context.Context, id string) ([]*models.QuizRecord, error)
}
