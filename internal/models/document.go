package models

// Anchor markers expected inside a document template. Paragraphs containing
// these strings delimit the replaceable region.
const (
	StartMarker = "START_CONTENT"
	EndMarker   = "END_CONTENT"
)

// Template is a parsed document template: an ordered list of paragraphs,
// optionally containing the start/end anchor markers.
type Template struct {
	Paragraphs []string `json:"paragraphs"`
}

// DocumentDraft is the fully assembled document: the complete ordered block
// sequence, template paragraphs included. Block order is significant and
// must survive rendering unchanged.
type DocumentDraft struct {
	Title  string         `json:"title"`
	Blocks []ContentBlock `json:"blocks"`
}
