package interfaces

import (
	"context"

	"github.com/ternarybob/gleaner/internal/models"
)

// Renderer converts an assembled document draft into a distributable PDF
// at outPath. Failures surface as *RenderError.
type Renderer interface {
	Render(ctx context.Context, draft *models.DocumentDraft, outPath string) error
}
