package render

import (
	"context"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/gleaner/internal/common"
	"github.com/ternarybob/gleaner/internal/interfaces"
	"github.com/ternarybob/gleaner/internal/models"
)

// Service renders assembled document drafts to PDF, either with the
// built-in fpdf renderer or through an external converter subprocess.
type Service struct {
	mode         string
	converterBin string
	logger       arbor.ILogger
}

// Compile-time assertion
var _ interfaces.Renderer = (*Service)(nil)

// NewService creates a renderer from render configuration.
func NewService(config *common.RenderConfig, logger arbor.ILogger) *Service {
	return &Service{
		mode:         config.Mode,
		converterBin: config.ConverterBin,
		logger:       logger,
	}
}

// Render produces a PDF at outPath and validates the result. All failures
// surface as *interfaces.RenderError.
func (s *Service) Render(ctx context.Context, draft *models.DocumentDraft, outPath string) error {
	var err error
	switch s.mode {
	case "builtin":
		err = renderBuiltin(draft, outPath)
	default:
		err = renderConverter(ctx, s.converterBin, draft, outPath)
	}
	if err != nil {
		return &interfaces.RenderError{Path: outPath, Err: err}
	}

	// A file existing is not enough; it has to be a readable PDF.
	if err := api.ValidateFile(outPath, nil); err != nil {
		return &interfaces.RenderError{Path: outPath, Err: err}
	}

	s.logger.Info().Str("path", outPath).Str("mode", s.mode).Msg("Rendered document")
	return nil
}
