package assembler

import (
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/gleaner/internal/common"
	"github.com/ternarybob/gleaner/internal/interfaces"
	"github.com/ternarybob/gleaner/internal/models"
)

// Service converts ordered content records into styled blocks and merges
// them into a document template.
type Service struct {
	logger arbor.ILogger
}

// NewService creates a document assembler.
func NewService(logger arbor.ILogger) *Service {
	return &Service{logger: logger}
}

// BuildArticleBlocks flattens ordered article records into styled blocks.
// Within a record, heading precedes body and each text unit emits its
// translated form first, then the original, matching the published layout.
func (s *Service) BuildArticleBlocks(records []*models.ArticleRecord) []models.ContentBlock {
	var blocks []models.ContentBlock
	for _, record := range records {
		blocks = append(blocks,
			NewBlock(models.BlockHeading, record.Heading.Translated),
			NewBlock(models.BlockHeading, record.Heading.Original),
		)
		for _, b := range record.Blocks {
			blocks = append(blocks,
				NewBlock(b.Kind, b.Text.Translated),
				NewBlock(b.Kind, b.Text.Original),
			)
		}
	}
	return blocks
}

// BuildQuizBlocks flattens ordered quiz records into styled blocks:
// question, lettered options, answer, explanation, spacer.
func (s *Service) BuildQuizBlocks(records []*models.QuizRecord) []models.ContentBlock {
	var blocks []models.ContentBlock
	for i, record := range records {
		blocks = append(blocks, NewBlock(models.BlockQuestion, fmt.Sprintf("%d. %s", i+1, record.Question)))
		for j, option := range record.Options {
			blocks = append(blocks, NewBlock(models.BlockOption, fmt.Sprintf("%c) %s", 'A'+j, option)))
		}
		blocks = append(blocks,
			NewBlock(models.BlockAnswer, "Answer: "+record.AnswerKey),
			NewBlock(models.BlockExplanation, record.Explanation),
			NewBlock(models.BlockSpacer, ""),
		)
	}
	return blocks
}

// Assemble merges blocks into the template using the given strategy and
// returns the complete ordered document draft.
func (s *Service) Assemble(tpl *models.Template, blocks []models.ContentBlock, strategy string, promo *common.PromoConfig) (*models.DocumentDraft, error) {
	switch strategy {
	case common.MergeAnchor:
		return s.assembleAnchor(tpl, blocks)
	case common.MergeAppend:
		return s.assembleAppend(tpl, blocks, promo), nil
	default:
		return nil, fmt.Errorf("unknown merge strategy %q", strategy)
	}
}

// assembleAnchor replaces everything between the START/END anchor
// paragraphs with the new blocks. The full ordered list is built first and
// spliced in one pass; the anchors survive as empty placeholders.
func (s *Service) assembleAnchor(tpl *models.Template, blocks []models.ContentBlock) (*models.DocumentDraft, error) {
	start, end := -1, -1
	for i, para := range tpl.Paragraphs {
		if start < 0 && strings.Contains(para, models.StartMarker) {
			start = i
			continue
		}
		if start >= 0 && strings.Contains(para, models.EndMarker) {
			end = i
			break
		}
	}
	if start < 0 {
		return nil, &interfaces.TemplateStructureError{Marker: models.StartMarker}
	}
	if end < 0 {
		return nil, &interfaces.TemplateStructureError{Marker: models.EndMarker}
	}

	out := make([]models.ContentBlock, 0, len(tpl.Paragraphs)+len(blocks))
	for _, para := range tpl.Paragraphs[:start] {
		out = append(out, NewBlock(models.BlockParagraph, para))
	}
	out = append(out, NewBlock(models.BlockParagraph, "")) // cleared start anchor
	out = append(out, blocks...)
	out = append(out, NewBlock(models.BlockParagraph, "")) // cleared end anchor
	for _, para := range tpl.Paragraphs[end+1:] {
		out = append(out, NewBlock(models.BlockParagraph, para))
	}

	s.logger.Debug().Int("template_paragraphs", len(tpl.Paragraphs)).Int("inserted", len(blocks)).Msg("Anchor merge complete")
	return &models.DocumentDraft{Blocks: out}, nil
}

// assembleAppend appends blocks to the template body, then the fixed
// promotional block, unconditionally last.
func (s *Service) assembleAppend(tpl *models.Template, blocks []models.ContentBlock, promo *common.PromoConfig) *models.DocumentDraft {
	out := make([]models.ContentBlock, 0, len(tpl.Paragraphs)+len(blocks)+1)
	for _, para := range tpl.Paragraphs {
		out = append(out, NewBlock(models.BlockParagraph, para))
	}
	out = append(out, blocks...)

	promoBlock := NewBlock(models.BlockParagraph, promoText(promo))
	if promo != nil {
		promoBlock.Link = promo.Link
	}
	out = append(out, promoBlock)

	return &models.DocumentDraft{Blocks: out}
}

func promoText(promo *common.PromoConfig) string {
	if promo == nil || promo.Text == "" {
		return "Join us for daily updates"
	}
	return promo.Text
}
