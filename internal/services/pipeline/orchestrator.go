package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/gleaner/internal/common"
	"github.com/ternarybob/gleaner/internal/interfaces"
	"github.com/ternarybob/gleaner/internal/models"
	"github.com/ternarybob/gleaner/internal/services/assembler"
	"github.com/ternarybob/gleaner/internal/services/delivery"
	"github.com/ternarybob/gleaner/internal/services/extractor"
	"github.com/ternarybob/gleaner/internal/services/scanner"
)

// Orchestrator sequences one pipeline run: Scan → Filter → {Extract →
// Assemble → Render → Deliver}* → Cleanup. Execution is strictly
// sequential; the dedup store is the only cross-run state.
type Orchestrator struct {
	config     *common.Config
	fetcher    interfaces.Fetcher
	translator interfaces.Translator
	store      interfaces.SeenStore
	assembler  *assembler.Service
	renderer   interfaces.Renderer
	messenger  interfaces.Messenger
	logger     arbor.ILogger
	now        func() time.Time
}

// NewOrchestrator wires the pipeline from its collaborators.
func NewOrchestrator(
	config *common.Config,
	fetcher interfaces.Fetcher,
	translator interfaces.Translator,
	store interfaces.SeenStore,
	asm *assembler.Service,
	renderer interfaces.Renderer,
	messenger interfaces.Messenger,
	logger arbor.ILogger,
) *Orchestrator {
	return &Orchestrator{
		config:     config,
		fetcher:    fetcher,
		translator: translator,
		store:      store,
		assembler:  asm,
		renderer:   renderer,
		messenger:  messenger,
		logger:     logger,
		now:        time.Now,
	}
}

// RunAll executes one run per configured source.
func (o *Orchestrator) RunAll(ctx context.Context) []*models.RunResult {
	results := make([]*models.RunResult, 0, len(o.config.Sources))
	for i := range o.config.Sources {
		results = append(results, o.RunSource(ctx, &o.config.Sources[i]))
	}
	return results
}

// RunSource executes one pipeline run for a source and reports its terminal
// state. Runs never panic outward; every exit path removes the temp
// artifacts the run created.
func (o *Orchestrator) RunSource(ctx context.Context, src *common.SourceConfig) *models.RunResult {
	result := &models.RunResult{
		ID:     uuid.NewString()[:8],
		Source: src.Name,
		Status: models.RunCompleted,
	}
	log := o.logger.WithCorrelationId(result.ID)

	// Store cleanup pass: malformed entries self-heal before filtering.
	if _, err := o.store.Purge(ctx); err != nil {
		log.Warn().Err(err).Msg("Store purge failed")
	}

	scan := scanner.NewService(o.fetcher, src.Selectors.Link, log)
	ids, err := scan.Discover(ctx, src.BaseURL, src.Pages, o.buildFilter(src))
	if err != nil {
		return o.abort(result, log, fmt.Errorf("index scan failed: %w", err))
	}
	result.Discovered = len(ids)

	var newIDs []string
	for _, id := range ids {
		seen, err := o.store.IsSeen(ctx, id)
		if err != nil {
			return o.abort(result, log, fmt.Errorf("seen lookup failed: %w", err))
		}
		if !seen {
			newIDs = append(newIDs, id)
		}
	}
	result.New = len(newIDs)
	if len(newIDs) == 0 {
		log.Info().Int("discovered", result.Discovered).Msg("No new items")
		return result
	}

	// Chronological processing when every id carries a date token.
	common.SortByDateToken(newIDs)

	tpl, err := assembler.LoadTemplate(ctx, o.fetcher, o.config.Template.Location)
	if err != nil {
		return o.abort(result, log, err)
	}

	tmpDir, err := os.MkdirTemp("", "gleaner-run-")
	if err != nil {
		return o.abort(result, log, fmt.Errorf("failed to create temp dir: %w", err))
	}
	defer os.RemoveAll(tmpDir)

	switch src.Mode {
	case common.ModeQuiz:
		o.runQuiz(ctx, src, tpl, newIDs, tmpDir, result, log)
	default:
		o.runArticle(ctx, src, tpl, newIDs, tmpDir, result, log)
	}

	if result.Status == models.RunCompleted && result.Skipped > 0 {
		result.Status = models.RunCompletedWithSkips
	}

	log.Info().
		Str("status", string(result.Status)).
		Int("new", result.New).
		Int("extracted", result.Extracted).
		Int("skipped", result.Skipped).
		Int("delivered", result.Delivered).
		Msg("Run finished")
	return result
}

// runArticle extracts every new id, assembles one document for the whole
// batch and delivers it once.
func (o *Orchestrator) runArticle(ctx context.Context, src *common.SourceConfig, tpl *models.Template, ids []string, tmpDir string, result *models.RunResult, log arbor.ILogger) {
	extract := extractor.NewArticleService(o.fetcher, o.translator, &src.Selectors, log)

	var records []*models.ArticleRecord
	for _, id := range ids {
		record, err := extract.ExtractArticle(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("url", id).Msg("Extraction failed, skipping item")
			result.Skipped++
			continue
		}
		// Commit point: content is produced, the id is never reprocessed,
		// regardless of how render or delivery go.
		o.markSeen(ctx, id, log)
		records = append(records, record)
		result.Extracted++
	}
	if len(records) == 0 {
		return
	}

	blocks := o.assembler.BuildArticleBlocks(records)
	draft, err := o.assembler.Assemble(tpl, blocks, src.Merge, &src.Promo)
	if err != nil {
		result.Status = models.RunAborted
		result.Err = err.Error()
		log.Error().Err(err).Msg("Document assembly failed")
		return
	}
	draft.Title = fmt.Sprintf("%s %s", o.now().Format("02-01-2006"), src.CaptionTitle)

	filename := draft.Title + ".pdf"
	outPath := filepath.Join(tmpDir, filename)
	if err := o.renderer.Render(ctx, draft, outPath); err != nil {
		log.Error().Err(err).Msg("Render failed, delivery skipped")
		result.Skipped++
		return
	}

	task := &models.DeliveryTask{
		ArtifactPath: outPath,
		Filename:     filename,
		Caption:      o.buildCaption(src, records),
		MaxAttempts:  o.config.Delivery.MaxAttempts,
	}
	if err := o.messenger.SendDocument(ctx, task); err != nil {
		log.Error().Err(err).Msg("Document delivery abandoned")
		result.Skipped++
		return
	}
	result.Delivered++
}

// runQuiz produces one document per source id plus a quiz poll per record.
func (o *Orchestrator) runQuiz(ctx context.Context, src *common.SourceConfig, tpl *models.Template, ids []string, tmpDir string, result *models.RunResult, log arbor.ILogger) {
	extract := extractor.NewQuizService(o.fetcher, &src.Selectors, log)

	for _, id := range ids {
		records, err := extract.ExtractQuiz(ctx, id)
		if err != nil || len(records) == 0 {
			log.Warn().Err(err).Str("url", id).Msg("Quiz extraction failed, skipping item")
			result.Skipped++
			continue
		}
		o.markSeen(ctx, id, log)
		result.Extracted += len(records)

		blocks := o.assembler.BuildQuizBlocks(records)
		draft, err := o.assembler.Assemble(tpl, blocks, src.Merge, &src.Promo)
		if err != nil {
			result.Status = models.RunAborted
			result.Err = err.Error()
			log.Error().Err(err).Msg("Document assembly failed")
			return
		}
		draft.Title = fmt.Sprintf("%s %s", o.now().Format("02-01-2006"), src.CaptionTitle)

		filename := fmt.Sprintf("%s.pdf", common.Slug(id))
		outPath := filepath.Join(tmpDir, filename)
		if err := o.renderer.Render(ctx, draft, outPath); err != nil {
			log.Error().Err(err).Str("url", id).Msg("Render failed, delivery skipped")
			result.Skipped++
			continue
		}

		task := &models.DeliveryTask{
			ArtifactPath: outPath,
			Filename:     filename,
			Caption:      fmt.Sprintf("🎗️ %s %s 🎗️", o.now().Format("02 January 2006"), src.CaptionTitle),
			MaxAttempts:  o.config.Delivery.MaxAttempts,
		}
		if err := o.messenger.SendDocument(ctx, task); err != nil {
			log.Error().Err(err).Str("url", id).Msg("Document delivery abandoned")
			result.Skipped++
		} else {
			result.Delivered++
		}

		o.sendPolls(ctx, records, result, log)
	}
}

// sendPolls delivers one quiz poll per record. Records whose answer key
// cannot be resolved are skipped, never sent with a guessed answer.
func (o *Orchestrator) sendPolls(ctx context.Context, records []*models.QuizRecord, result *models.RunResult, log arbor.ILogger) {
	for _, record := range records {
		poll, err := delivery.BuildPoll(record)
		if err != nil {
			log.Error().Err(err).Str("url", record.URL).Msg("Poll skipped")
			result.Skipped++
			continue
		}
		if err := o.messenger.SendPoll(ctx, poll); err != nil {
			log.Error().Err(err).Str("url", record.URL).Msg("Poll delivery failed")
			result.Skipped++
			continue
		}
		result.Delivered++
	}
}

// abort marks the run failed on a missing precondition and reports why.
func (o *Orchestrator) abort(result *models.RunResult, log arbor.ILogger, err error) *models.RunResult {
	result.Status = models.RunAborted
	result.Err = err.Error()
	log.Error().Err(err).Str("source", result.Source).Msg("Run aborted")
	return result
}

// markSeen records the commit point. A store failure here is logged, not
// fatal: the worst case is one reprocessed item on the next run.
func (o *Orchestrator) markSeen(ctx context.Context, id string, log arbor.ILogger) {
	if err := o.store.MarkSeen(ctx, id); err != nil {
		log.Error().Err(err).Str("url", id).Msg("Failed to mark item seen")
	}
}

// buildFilter composes the source's candidate filters: excluded categories
// and the current year-month restriction.
func (o *Orchestrator) buildFilter(src *common.SourceConfig) interfaces.FilterFunc {
	yearMonth := strings.ToLower(o.now().Format("2006-01"))
	monthName := strings.ToLower(o.now().Format("january-2006"))

	return func(id string) bool {
		lower := strings.ToLower(id)
		for _, excluded := range src.Exclude {
			if excluded != "" && strings.Contains(lower, strings.ToLower(excluded)) {
				return false
			}
		}
		if src.CurrentMonthOnly {
			if !strings.Contains(lower, yearMonth) && !strings.Contains(lower, monthName) {
				return false
			}
		}
		return true
	}
}

// buildCaption formats the channel caption for an article batch: run date,
// one line per original heading, then the promo line.
func (o *Orchestrator) buildCaption(src *common.SourceConfig, records []*models.ArticleRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎗️ %s %s 🎗️\n\n", o.now().Format("02 January 2006"), src.CaptionTitle)
	for _, record := range records {
		fmt.Fprintf(&b, "👉 %s\n", record.Heading.Original)
	}
	if src.Promo.Text != "" {
		fmt.Fprintf(&b, "\n🎉 %s 🎉", src.Promo.Text)
	}
	return b.String()
}
