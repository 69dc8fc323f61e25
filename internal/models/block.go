package models

// BlockKind classifies a unit of document output. Classification happens
// once during extraction; everything downstream switches on the kind only.
type BlockKind string

const (
	BlockHeading     BlockKind = "heading"
	BlockSubheading2 BlockKind = "subheading_2"
	BlockSubheading4 BlockKind = "subheading_4"
	BlockParagraph   BlockKind = "paragraph"
	BlockListItem    BlockKind = "list_item"
	BlockQuestion    BlockKind = "question"
	BlockOption      BlockKind = "option"
	BlockAnswer      BlockKind = "answer"
	BlockExplanation BlockKind = "explanation"
	BlockSpacer      BlockKind = "spacer"
)

// StyleHints carries the presentation attributes for a block. Values are
// assigned from the assembler's style table, never per call site.
type StyleHints struct {
	Bold         bool    `json:"bold,omitempty"`
	Italic       bool    `json:"italic,omitempty"`
	Underline    bool    `json:"underline,omitempty"`
	Indent       float64 `json:"indent,omitempty"`       // left indent in mm
	FontSize     float64 `json:"font_size,omitempty"`    // point size, 0 = body default
	SpaceBefore  float64 `json:"space_before,omitempty"` // vertical gap in mm
	SpaceAfter   float64 `json:"space_after,omitempty"`
	HeadingLevel int     `json:"heading_level,omitempty"` // template heading style (1, 2, 4)
}

// ContentBlock is one ordered unit of assembled document output.
type ContentBlock struct {
	Kind  BlockKind  `json:"kind"`
	Text  string     `json:"text"`
	Link  string     `json:"link,omitempty"` // optional hyperlink target
	Style StyleHints `json:"style"`
}
