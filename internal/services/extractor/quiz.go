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

// QuizService extracts quiz detail pages. One page carries several
// questions; a malformed question is skipped and logged, the rest of the
// page still extracts.
type QuizService struct {
	fetcher   interfaces.Fetcher
	selectors *common.SelectorConfig
	logger    arbor.ILogger
}

// Compile-time assertion
var _ interfaces.QuizExtractor = (*QuizService)(nil)

// NewQuizService creates a quiz extractor.
func NewQuizService(fetcher interfaces.Fetcher, selectors *common.SelectorConfig, logger arbor.ILogger) *QuizService {
	return &QuizService{
		fetcher:   fetcher,
		selectors: selectors,
		logger:    logger,
	}
}

// ExtractQuiz fetches and parses one quiz page into question records.
func (s *QuizService) ExtractQuiz(ctx context.Context, id string) ([]*models.QuizRecord, error) {
	body, err := s.fetcher.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &interfaces.ExtractionError{URL: id, Missing: "parseable document"}
	}

	if doc.Find(s.selectors.Container).Length() == 0 {
		return nil, &interfaces.ExtractionError{URL: id, Missing: "main content container"}
	}

	questions := doc.Find(s.selectors.Question)
	if questions.Length() == 0 {
		return nil, &interfaces.ExtractionError{URL: id, Missing: "question block"}
	}

	var records []*models.QuizRecord
	questions.Each(func(i int, q *goquery.Selection) {
		// Everything belonging to this question sits between it and the
		// next question element.
		scope := q.NextUntil(s.selectors.Question)

		record, err := s.parseQuestion(id, q, scope)
		if err != nil {
			s.logger.Warn().Err(err).Str("url", id).Int("question", i+1).Msg("Skipping malformed quiz question")
			return
		}
		records = append(records, record)
	})

	s.logger.Debug().Str("url", id).Int("questions", len(records)).Msg("Quiz extracted")
	return records, nil
}

func (s *QuizService) parseQuestion(id string, q *goquery.Selection, scope *goquery.Selection) (*models.QuizRecord, error) {
	question := strings.TrimSpace(q.Text())
	if question == "" {
		return nil, &interfaces.ExtractionError{URL: id, Missing: "question text"}
	}

	optionsBlock := scope.Filter(s.selectors.Options).First()
	if optionsBlock.Length() == 0 {
		return nil, &interfaces.ExtractionError{URL: id, Missing: "options block"}
	}

	var options []string
	optionsBlock.Children().Each(func(_ int, opt *goquery.Selection) {
		if text := strings.TrimSpace(opt.Text()); text != "" {
			options = append(options, text)
		}
	})
	if len(options) < 2 {
		return nil, &interfaces.ExtractionError{URL: id, Missing: "options"}
	}

	answerEl := scope.Filter(s.selectors.Answer).First()
	if answerEl.Length() == 0 {
		return nil, &interfaces.ExtractionError{URL: id, Missing: "answer block"}
	}
	payload, exists := answerEl.Attr(s.selectors.AnswerAttr)
	if !exists {
		return nil, &interfaces.ExtractionError{URL: id, Missing: "answer attribute"}
	}
	key, ok := ParseAnswerKey(payload)
	if !ok {
		return nil, &interfaces.ExtractionError{URL: id, Missing: "answer key"}
	}

	explanationEl := scope.Filter(s.selectors.Explanation).First()
	if explanationEl.Length() == 0 {
		return nil, &interfaces.ExtractionError{URL: id, Missing: "explanation"}
	}

	return &models.QuizRecord{
		URL:         id,
		Question:    question,
		Options:     options,
		AnswerKey:   key,
		Explanation: strings.TrimSpace(explanationEl.Text()),
	}, nil
}

// ParseAnswerKey extracts the answer token from a hidden attribute payload:
// the single token between the first '{' and the last '}'.
func ParseAnswerKey(payload string) (string, bool) {
	start := strings.Index(payload, "{")
	end := strings.LastIndex(payload, "}")
	if start < 0 || end <= start {
		return "", false
	}
	token := strings.TrimSpace(payload[start+1 : end])
	if token == "" || strings.ContainsAny(token, " \t\n") {
		return "", false
	}
	return token, true
}
