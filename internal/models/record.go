package models

// TextPair holds a harvested text unit together with its translated
// counterpart. When translation fails the translated side carries the
// original text, so both fields are always populated.
type TextPair struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
}

// ArticleBlock is one classified element of an article body, in document
// order.
type ArticleBlock struct {
	Kind BlockKind `json:"kind"`
	Text TextPair  `json:"text"`
}

// ArticleRecord is the structured form of one harvested article page.
// Records are immutable once extraction returns them.
type ArticleRecord struct {
	URL     string         `json:"url"`
	Heading TextPair       `json:"heading"`
	Blocks  []ArticleBlock `json:"blocks"`
}

// QuizRecord is the structured form of one quiz question: question text,
// ordered options, the correct-option key (a single letter) and an
// explanation.
type QuizRecord struct {
	URL         string   `json:"url"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerKey   string   `json:"answer_key"`
	Explanation string   `json:"explanation"`
}
