package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/gleaner/internal/common"
	"github.com/ternarybob/gleaner/internal/interfaces"
	"github.com/ternarybob/gleaner/internal/models"
)

func templateWithAnchors() *models.Template {
	return ParseTemplate([]byte(
		"Masthead\n" +
			"Issue line\n" +
			models.StartMarker + "\n" +
			"old body one\n" +
			"old body two\n" +
			"old body three\n" +
			models.EndMarker + "\n" +
			"Footer\n"))
}

func TestAssembleAnchorReplacesInteriorInOrder(t *testing.T) {
	service := NewService(arbor.NewLogger())

	blocks := []models.ContentBlock{
		NewBlock(models.BlockHeading, "New Heading"),
		NewBlock(models.BlockParagraph, "New body"),
	}

	draft, err := service.Assemble(templateWithAnchors(), blocks, common.MergeAnchor, nil)
	require.NoError(t, err)

	texts := make([]string, 0, len(draft.Blocks))
	for _, b := range draft.Blocks {
		texts = append(texts, b.Text)
	}

	// Preamble, cleared anchor, new content, cleared anchor, postamble.
	// Nothing from the old interior survives.
	assert.Equal(t, []string{
		"Masthead",
		"Issue line",
		"",
		"New Heading",
		"New body",
		"",
		"Footer",
	}, texts)

	assert.Equal(t, models.BlockHeading, draft.Blocks[3].Kind)
	assert.Equal(t, models.BlockParagraph, draft.Blocks[4].Kind)
}

func TestAssembleAnchorMissingStartMarker(t *testing.T) {
	service := NewService(arbor.NewLogger())
	tpl := ParseTemplate([]byte("Masthead\n" + models.EndMarker + "\nFooter\n"))

	_, err := service.Assemble(tpl, nil, common.MergeAnchor, nil)

	var tplErr *interfaces.TemplateStructureError
	require.ErrorAs(t, err, &tplErr)
	assert.Equal(t, models.StartMarker, tplErr.Marker)
}

func TestAssembleAnchorMissingEndMarker(t *testing.T) {
	service := NewService(arbor.NewLogger())
	tpl := ParseTemplate([]byte("Masthead\n" + models.StartMarker + "\nFooter\n"))

	_, err := service.Assemble(tpl, nil, common.MergeAnchor, nil)

	var tplErr *interfaces.TemplateStructureError
	require.ErrorAs(t, err, &tplErr)
	assert.Equal(t, models.EndMarker, tplErr.Marker)
}

func TestAssembleAppendPutsPromoLast(t *testing.T) {
	service := NewService(arbor.NewLogger())
	tpl := ParseTemplate([]byte("Quiz Masthead\n"))

	blocks := []models.ContentBlock{
		NewBlock(models.BlockQuestion, "1. Question?"),
		NewBlock(models.BlockOption, "A) Yes"),
	}
	promo := &common.PromoConfig{Text: "Join the channel", Link: "https://t.me/example"}

	draft, err := service.Assemble(tpl, blocks, common.MergeAppend, promo)
	require.NoError(t, err)

	require.Len(t, draft.Blocks, 4)
	last := draft.Blocks[len(draft.Blocks)-1]
	assert.Equal(t, "Join the channel", last.Text)
	assert.Equal(t, "https://t.me/example", last.Link)
}

func TestAssembleAppendDefaultPromoText(t *testing.T) {
	service := NewService(arbor.NewLogger())
	tpl := ParseTemplate([]byte("Quiz Masthead\n"))

	draft, err := service.Assemble(tpl, nil, common.MergeAppend, nil)
	require.NoError(t, err)

	last := draft.Blocks[len(draft.Blocks)-1]
	assert.Equal(t, "Join us for daily updates", last.Text)
}

func TestAssembleUnknownStrategy(t *testing.T) {
	service := NewService(arbor.NewLogger())

	_, err := service.Assemble(templateWithAnchors(), nil, "interleave", nil)
	assert.Error(t, err)
}

func TestBuildArticleBlocksTranslatedPrecedesOriginal(t *testing.T) {
	service := NewService(arbor.NewLogger())

	records := []*models.ArticleRecord{{
		URL:     "https://example.com/a/",
		Heading: models.TextPair{Original: "Heading", Translated: "T:Heading"},
		Blocks: []models.ArticleBlock{
			{Kind: models.BlockParagraph, Text: models.TextPair{Original: "Body", Translated: "T:Body"}},
		},
	}}

	blocks := service.BuildArticleBlocks(records)
	require.Len(t, blocks, 4)

	assert.Equal(t, "T:Heading", blocks[0].Text)
	assert.Equal(t, "Heading", blocks[1].Text)
	assert.Equal(t, "T:Body", blocks[2].Text)
	assert.Equal(t, "Body", blocks[3].Text)

	assert.Equal(t, models.BlockHeading, blocks[0].Kind)
	assert.Equal(t, models.BlockParagraph, blocks[2].Kind)
}

func TestBuildQuizBlocksLayout(t *testing.T) {
	service := NewService(arbor.NewLogger())

	records := []*models.QuizRecord{{
		URL:         "https://example.com/q/",
		Question:    "Which one?",
		Options:     []string{"First", "Second"},
		AnswerKey:   "B",
		Explanation: "Because.",
	}}

	blocks := service.BuildQuizBlocks(records)
	require.Len(t, blocks, 6)

	assert.Equal(t, "1. Which one?", blocks[0].Text)
	assert.Equal(t, "A) First", blocks[1].Text)
	assert.Equal(t, "B) Second", blocks[2].Text)
	assert.Equal(t, "Answer: B", blocks[3].Text)
	assert.Equal(t, "Because.", blocks[4].Text)
	assert.Equal(t, models.BlockSpacer, blocks[5].Kind)
}

func TestNewBlockAppliesTableStyle(t *testing.T) {
	heading := NewBlock(models.BlockHeading, "H")
	assert.True(t, heading.Style.Bold)
	assert.Equal(t, StyleFor(models.BlockHeading), heading.Style)

	answer := NewBlock(models.BlockAnswer, "Answer: A")
	assert.True(t, answer.Style.Underline)

	explanation := NewBlock(models.BlockExplanation, "why")
	assert.True(t, explanation.Style.Italic)
}

func TestParseTemplatePreservesBlankLines(t *testing.T) {
	tpl := ParseTemplate([]byte("one\r\n\r\ntwo\n"))
	assert.Equal(t, []string{"one", "", "two"}, tpl.Paragraphs)
}

func TestExportURLRewritesShareLink(t *testing.T) {
	got := exportURL("https://docs.google.com/document/d/abc123/edit?usp=sharing")
	assert.Equal(t, "https://docs.google.com/document/d/abc123/export?format=txt", got)

	plain := "https://example.com/template.txt"
	assert.Equal(t, plain, exportURL(plain))
}
