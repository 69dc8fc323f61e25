package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/gleaner/internal/common"
	"github.com/ternarybob/gleaner/internal/interfaces"
)

func quizSelectors() *common.SelectorConfig {
	return &common.SelectorConfig{
		Container:   "div.inside_post.column.content_width",
		Question:    "div.wp_quiz_question",
		Options:     "div.wp_quiz_question_options",
		Answer:      "div.ques_answer",
		AnswerAttr:  "data-answer",
		Explanation: "div.answer_hint",
	}
}

const quizHTML = `<html><body>
<div class="inside_post column content_width">
  <div class="wp_quiz_question">Which river is the longest?</div>
  <div class="wp_quiz_question_options">
    <div>Nile</div>
    <div>Amazon</div>
    <div>Ganga</div>
    <div>Danube</div>
  </div>
  <div class="ques_answer" data-answer="Answer: {A}">Answer: A</div>
  <div class="answer_hint">The Nile is commonly cited as the longest.</div>

  <div class="wp_quiz_question">Broken question</div>
  <div class="wp_quiz_question_options">
    <div>Yes</div>
    <div>No</div>
  </div>
  <div class="answer_hint">No answer block for this one.</div>

  <div class="wp_quiz_question">Which planet is red?</div>
  <div class="wp_quiz_question_options">
    <div>Venus</div>
    <div>Mars</div>
    <div>Jupiter</div>
  </div>
  <div class="ques_answer" data-answer="hidden {B} payload">Answer: B</div>
  <div class="answer_hint">Iron oxide gives Mars its color.</div>
</div>
</body></html>`

func TestExtractQuizSkipsMalformedQuestionOnly(t *testing.T) {
	url := "https://example.com/daily-quiz-march-1-2024/"
	fetcher := &fakeFetcher{pages: map[string]string{url: quizHTML}}
	service := NewQuizService(fetcher, quizSelectors(), arbor.NewLogger())

	records, err := service.ExtractQuiz(context.Background(), url)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Which river is the longest?", first.Question)
	assert.Equal(t, []string{"Nile", "Amazon", "Ganga", "Danube"}, first.Options)
	assert.Equal(t, "A", first.AnswerKey)
	assert.Equal(t, "The Nile is commonly cited as the longest.", first.Explanation)

	second := records[1]
	assert.Equal(t, "Which planet is red?", second.Question)
	assert.Equal(t, "B", second.AnswerKey)
}

func TestExtractQuizMissingContainer(t *testing.T) {
	url := "https://example.com/not-a-quiz/"
	fetcher := &fakeFetcher{pages: map[string]string{url: "<html><body></body></html>"}}
	service := NewQuizService(fetcher, quizSelectors(), arbor.NewLogger())

	_, err := service.ExtractQuiz(context.Background(), url)

	var extractErr *interfaces.ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "main content container", extractErr.Missing)
}

func TestExtractQuizMissingQuestions(t *testing.T) {
	url := "https://example.com/empty-quiz/"
	fetcher := &fakeFetcher{pages: map[string]string{
		url: `<html><body><div class="inside_post column content_width"><p>no quiz here</p></div></body></html>`,
	}}
	service := NewQuizService(fetcher, quizSelectors(), arbor.NewLogger())

	_, err := service.ExtractQuiz(context.Background(), url)

	var extractErr *interfaces.ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, "question block", extractErr.Missing)
}

func TestParseAnswerKey(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		ok      bool
	}{
		{name: "plain key", payload: "Answer: {C}", want: "C", ok: true},
		{name: "key with surrounding noise", payload: "x{ B }y", want: "B", ok: true},
		{name: "nested braces take outermost", payload: "{{A}}", want: "{A}", ok: true},
		{name: "no braces", payload: "Answer: C", ok: false},
		{name: "empty braces", payload: "{}", ok: false},
		{name: "reversed braces", payload: "}A{", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAnswerKey(tt.payload)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
