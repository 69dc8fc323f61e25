package assembler

import "github.com/ternarybob/gleaner/internal/models"

// styleTable is the single source of truth for block presentation. Every
// block gets its hints here; no call site applies styling of its own.
var styleTable = map[models.BlockKind]models.StyleHints{
	models.BlockHeading:     {Bold: true, FontSize: 16, HeadingLevel: 1, SpaceBefore: 4, SpaceAfter: 2},
	models.BlockSubheading2: {Bold: true, FontSize: 13, HeadingLevel: 2, SpaceBefore: 3, SpaceAfter: 1.5},
	models.BlockSubheading4: {Bold: true, FontSize: 11, HeadingLevel: 4, SpaceBefore: 2, SpaceAfter: 1},
	models.BlockParagraph:   {FontSize: 10},
	models.BlockListItem:    {FontSize: 10, Indent: 4},
	models.BlockQuestion:    {Bold: true, FontSize: 12, SpaceBefore: 4, SpaceAfter: 2},
	models.BlockOption:      {FontSize: 10, Indent: 6, SpaceAfter: 0.5},
	models.BlockAnswer:      {Bold: true, Underline: true, FontSize: 10, SpaceBefore: 1},
	models.BlockExplanation: {Italic: true, FontSize: 10, SpaceAfter: 2},
	models.BlockSpacer:      {FontSize: 10, SpaceAfter: 4},
}

// NewBlock builds a content block with its table-driven style applied.
func NewBlock(kind models.BlockKind, text string) models.ContentBlock {
	return models.ContentBlock{
		Kind:  kind,
		Text:  text,
		Style: styleTable[kind],
	}
}

// StyleFor exposes the table for the renderer and tests.
func StyleFor(kind models.BlockKind) models.StyleHints {
	return styleTable[kind]
}
