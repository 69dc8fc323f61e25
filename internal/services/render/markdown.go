package render

import (
	"fmt"
	"strings"

	"github.com/ternarybob/gleaner/internal/models"
)

// MarkdownFromDraft serializes the ordered block sequence to markdown.
// Block order maps one-to-one onto output order.
func MarkdownFromDraft(draft *models.DocumentDraft) string {
	var b strings.Builder
	for _, block := range draft.Blocks {
		switch block.Kind {
		case models.BlockHeading:
			fmt.Fprintf(&b, "# %s\n\n", block.Text)
		case models.BlockSubheading2:
			fmt.Fprintf(&b, "## %s\n\n", block.Text)
		case models.BlockSubheading4:
			fmt.Fprintf(&b, "#### %s\n\n", block.Text)
		case models.BlockListItem:
			fmt.Fprintf(&b, "- %s\n", strings.TrimPrefix(block.Text, "• "))
		case models.BlockQuestion:
			fmt.Fprintf(&b, "**%s**\n\n", block.Text)
		case models.BlockOption:
			fmt.Fprintf(&b, "- %s\n", block.Text)
		case models.BlockAnswer:
			fmt.Fprintf(&b, "\n**%s**\n\n", block.Text)
		case models.BlockExplanation:
			fmt.Fprintf(&b, "*%s*\n\n", block.Text)
		case models.BlockSpacer:
			b.WriteString("\n")
		default: // paragraph
			if block.Link != "" {
				fmt.Fprintf(&b, "[%s](%s)\n\n", block.Text, block.Link)
			} else {
				fmt.Fprintf(&b, "%s\n\n", block.Text)
			}
		}
	}
	return b.String()
}
