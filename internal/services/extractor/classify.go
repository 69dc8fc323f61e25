package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ternarybob/gleaner/internal/models"
)

// classifyElement maps a parsed element to a block kind. Returns false for
// noise elements (share widgets, prev/next navigation) and anything without
// a recognized structural role.
func classifyElement(sel *goquery.Selection, noise []string) (models.BlockKind, bool) {
	if isNoise(sel, noise) {
		return "", false
	}

	switch goquery.NodeName(sel) {
	case "p":
		return models.BlockParagraph, true
	case "h2":
		return models.BlockSubheading2, true
	case "h4":
		return models.BlockSubheading4, true
	case "ul":
		return models.BlockListItem, true
	default:
		return "", false
	}
}

// isNoise reports whether the element carries any of the known noise class
// names.
func isNoise(sel *goquery.Selection, noise []string) bool {
	classAttr, exists := sel.Attr("class")
	if !exists {
		return false
	}
	for _, class := range strings.Fields(classAttr) {
		for _, n := range noise {
			if class == n {
				return true
			}
		}
	}
	return false
}
