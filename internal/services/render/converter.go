package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ternarybob/gleaner/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// renderConverter writes the draft as an HTML file and hands it to the
// external converter subprocess, which is expected to produce a PDF named
// after the input stem in the output directory. The result is renamed to
// outPath. A non-zero exit or a missing output file is a conversion
// failure.
func renderConverter(ctx context.Context, bin string, draft *models.DocumentDraft, outPath string) error {
	dir := filepath.Dir(outPath)
	stem := uuid.NewString()

	htmlPath := filepath.Join(dir, stem+".html")
	if err := writeHTML(draft, htmlPath); err != nil {
		return err
	}
	defer os.Remove(htmlPath)

	cmd := exec.CommandContext(ctx, bin, "--headless", "--convert-to", "pdf", "--outdir", dir, htmlPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("converter failed: %w: %s", err, strings.TrimSpace(string(output)))
	}

	produced := filepath.Join(dir, stem+".pdf")
	if _, err := os.Stat(produced); err != nil {
		return fmt.Errorf("converter produced no output file: %w", err)
	}

	if err := os.Rename(produced, outPath); err != nil {
		return fmt.Errorf("failed to rename converter output: %w", err)
	}
	return nil
}

// writeHTML converts the draft to HTML via markdown.
func writeHTML(draft *models.DocumentDraft, path string) error {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Linkify),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(MarkdownFromDraft(draft)), &body); err != nil {
		return fmt.Errorf("failed to convert draft to HTML: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", draft.Title)
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")

	if err := os.WriteFile(path, page.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write HTML file: %w", err)
	}
	return nil
}
