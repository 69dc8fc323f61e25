package render

import (
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/gleaner/internal/models"
)

const (
	pageLeftMargin = 10.0
	pageWidth      = 190.0 // usable width on A4 with 10mm margins
	defaultSize    = 10.0
	lineSpacing    = 0.5 // line height = font size * lineSpacing, fixed for the whole document
)

// renderBuiltin writes the draft straight to PDF with fpdf, applying each
// block's style hints.
func renderBuiltin(draft *models.DocumentDraft, outPath string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageLeftMargin, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()
	if draft.Title != "" {
		pdf.SetTitle(draft.Title, true)
	}

	for _, block := range draft.Blocks {
		writeBlock(pdf, block)
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func writeBlock(pdf *fpdf.Fpdf, block models.ContentBlock) {
	hints := block.Style

	size := hints.FontSize
	if size == 0 {
		size = defaultSize
	}

	style := ""
	if hints.Bold {
		style += "B"
	}
	if hints.Italic {
		style += "I"
	}
	if hints.Underline {
		style += "U"
	}
	pdf.SetFont("Arial", style, size)

	if hints.SpaceBefore > 0 {
		pdf.Ln(hints.SpaceBefore)
	}

	if block.Kind == models.BlockSpacer {
		pdf.Ln(hints.SpaceAfter + size*lineSpacing)
		return
	}

	pdf.SetX(pageLeftMargin + hints.Indent)
	if block.Link != "" {
		pdf.WriteLinkString(size*lineSpacing, block.Text, block.Link)
		pdf.Ln(size * lineSpacing)
	} else {
		pdf.MultiCell(pageWidth-hints.Indent, size*lineSpacing, block.Text, "", "L", false)
	}

	if hints.SpaceAfter > 0 {
		pdf.Ln(hints.SpaceAfter)
	}
}
