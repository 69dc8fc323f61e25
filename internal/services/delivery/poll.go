package delivery

import (
	"fmt"
	"strings"

	"github.com/ternarybob/gleaner/internal/models"
)

// Destination limits for interactive polls.
const (
	QuestionLimit    = 300
	OptionLimit      = 100
	ExplanationLimit = 200
)

// Truncate caps s at max runes. Longer text is cut so the result is exactly
// max runes and ends in "...". Text at or under the limit is unchanged.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// ResolveAnswerIndex maps an answer-key letter to a zero-based option
// position. Keys that do not land on a valid option report false.
func ResolveAnswerIndex(key string, optionCount int) (int, bool) {
	key = strings.ToUpper(strings.TrimSpace(key))
	if len(key) != 1 || key[0] < 'A' || key[0] > 'Z' {
		return 0, false
	}
	index := int(key[0] - 'A')
	if index >= optionCount {
		return 0, false
	}
	return index, true
}

// BuildPoll converts a quiz record into a poll payload, truncated to
// destination limits. A record whose answer key does not resolve to a valid
// option position is rejected, never sent with a guessed answer.
func BuildPoll(record *models.QuizRecord) (*models.Poll, error) {
	index, ok := ResolveAnswerIndex(record.AnswerKey, len(record.Options))
	if !ok {
		return nil, fmt.Errorf("answer key %q does not resolve to one of %d options", record.AnswerKey, len(record.Options))
	}

	options := make([]string, len(record.Options))
	for i, option := range record.Options {
		options[i] = Truncate(option, OptionLimit)
	}

	return &models.Poll{
		Question:      Truncate(record.Question, QuestionLimit),
		Options:       options,
		CorrectOption: index,
		Explanation:   Truncate(record.Explanation, ExplanationLimit),
	}, nil
}
