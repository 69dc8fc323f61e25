package assembler

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/gleaner/internal/interfaces"
	"github.com/ternarybob/gleaner/internal/models"
)

// LoadTemplate reads a document template from a local path or an HTTP URL.
// Google Docs share links are rewritten to their plain-text export form.
func LoadTemplate(ctx context.Context, fetcher interfaces.Fetcher, location string) (*models.Template, error) {
	var data []byte
	var err error

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		data, err = fetcher.Fetch(ctx, exportURL(location))
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", location, err)
	}

	return ParseTemplate(data), nil
}

// exportURL rewrites a Google Docs share link to its export endpoint.
func exportURL(location string) string {
	return strings.Replace(location, "/edit?usp=sharing", "/export?format=txt", 1)
}

// ParseTemplate splits template text into paragraphs, one per line. Blank
// lines survive as empty paragraphs so spacing is preserved.
func ParseTemplate(data []byte) *models.Template {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	return &models.Template{Paragraphs: lines}
}
