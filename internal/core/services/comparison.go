package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clauseworks/pactdiff/internal/core/domain"
	"github.com/clauseworks/pactdiff/internal/core/ports/driven"
	"github.com/clauseworks/pactdiff/internal/core/ports/driving"
	"github.com/clauseworks/pactdiff/internal/diffkit"
	"github.com/clauseworks/pactdiff/internal/logger"
)

// Ensure ComparisonService implements the interfaces.
var (
	_ driving.ComparisonService = (*ComparisonService)(nil)
	_ driven.PromptStoreAware   = (*ComparisonService)(nil)
)

// DefaultQueueSize is the buffered size of the comparison work queue.
const DefaultQueueSize = 16

// semanticSkippedNote explains a skipped semantic stage in results.
const semanticSkippedNote = "Semantic comparison skipped: no embedding service configured."

// defaultComparisonSummaryPrompt is used when no prompt store override
// exists. The digest of classified changes replaces the placeholder.
const defaultComparisonSummaryPrompt = `You are reviewing changes between two versions of a contract.
Write a short plain-English summary of the changes below, leading with
the ones most likely to matter legally. Do not invent changes.

Changes:
%s`

// ComparisonService creates and tracks document comparisons.
// AI services (embedding, LLM, grammar) are optional; stages degrade
// gracefully when they are nil.
type ComparisonService struct {
	cmpStore driven.ComparisonStore
	docStore driven.DocumentStore
	embedder driven.EmbeddingService
	llm      driven.LLMService
	grammar  driven.GrammarChecker
	prompts  driven.PromptStore
	settings domain.CompareSettings

	queue chan string

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewComparisonService creates a comparison service.
func NewComparisonService(
	cmpStore driven.ComparisonStore,
	docStore driven.DocumentStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	grammar driven.GrammarChecker,
	settings domain.CompareSettings,
) *ComparisonService {
	if settings.SemanticThreshold <= 0 {
		settings.SemanticThreshold = domain.DefaultAppSettings().Compare.SemanticThreshold
	}
	if settings.VisualThreshold <= 0 {
		settings.VisualThreshold = domain.DefaultAppSettings().Compare.VisualThreshold
	}
	return &ComparisonService{
		cmpStore: cmpStore,
		docStore: docStore,
		embedder: embedder,
		llm:      llm,
		grammar:  grammar,
		settings: settings,
		queue:    make(chan string, DefaultQueueSize),
	}
}

// SetPromptStore sets the prompt store for customisable summary prompts.
func (s *ComparisonService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// Create queues a comparison between two stored documents.
func (s *ComparisonService) Create(ctx context.Context, originalID, modifiedID string, level domain.ComparisonLevel) (*domain.Comparison, error) {
	if level == "" {
		level = domain.LevelAI
	}
	if !level.IsValid() {
		return nil, fmt.Errorf("%w: unknown comparison level %q", domain.ErrInvalidInput, level)
	}

	// Both documents must exist before queueing
	if _, err := s.docStore.GetDocument(ctx, originalID); err != nil {
		return nil, fmt.Errorf("original document: %w", err)
	}
	if _, err := s.docStore.GetDocument(ctx, modifiedID); err != nil {
		return nil, fmt.Errorf("modified document: %w", err)
	}

	now := time.Now()
	cmp := &domain.Comparison{
		ID:                 uuid.New().String(),
		OriginalDocumentID: originalID,
		ModifiedDocumentID: modifiedID,
		Level:              level,
		State:              domain.StateQueued,
		Progress:           0,
		Message:            "Comparison queued",
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.cmpStore.Save(ctx, cmp); err != nil {
		return nil, fmt.Errorf("save comparison: %w", err)
	}

	s.enqueue(cmp.ID)
	return cmp, nil
}

// enqueue hands a comparison to the worker without blocking. A full
// queue is fine: the job is persisted as queued and re-queued on Start.
func (s *ComparisonService) enqueue(id string) {
	select {
	case s.queue <- id:
	default:
		log.Printf("comparison: queue full, %s stays queued", id)
	}
}

// Status returns the current state of a comparison.
func (s *ComparisonService) Status(ctx context.Context, id string) (*domain.Comparison, error) {
	return s.cmpStore.Get(ctx, id)
}

// Result returns the result of a completed comparison.
func (s *ComparisonService) Result(ctx context.Context, id string) (*domain.Result, error) {
	cmp, err := s.cmpStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cmp.State != domain.StateCompleted || cmp.Result == nil {
		return nil, fmt.Errorf("%w: comparison is %s", domain.ErrComparisonIncomplete, cmp.State)
	}
	return cmp.Result, nil
}

// List returns all comparisons, newest first.
func (s *ComparisonService) List(ctx context.Context) ([]domain.Comparison, error) {
	return s.cmpStore.List(ctx)
}

// Execute runs the comparison pipeline synchronously without persisting
// a job.
func (s *ComparisonService) Execute(ctx context.Context, originalID, modifiedID string, level domain.ComparisonLevel) (*domain.Result, error) {
	if level == "" {
		level = domain.LevelAI
	}
	if !level.IsValid() {
		return nil, fmt.Errorf("%w: unknown comparison level %q", domain.ErrInvalidInput, level)
	}

	original, err := s.docStore.GetDocument(ctx, originalID)
	if err != nil {
		return nil, fmt.Errorf("original document: %w", err)
	}
	modified, err := s.docStore.GetDocument(ctx, modifiedID)
	if err != nil {
		return nil, fmt.Errorf("modified document: %w", err)
	}

	return s.compare(ctx, original, modified, level)
}

// Start launches the background worker. It blocks until Stop is called
// or ctx is cancelled.
func (s *ComparisonService) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	// Re-queue work that was interrupted by a previous shutdown
	s.requeueUnfinished(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case id := <-s.queue:
			s.wg.Add(1)
			func() {
				defer s.wg.Done()
				s.process(ctx, id)
			}()
		}
	}
}

// Stop gracefully shuts down the background worker.
func (s *ComparisonService) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// requeueUnfinished puts queued and interrupted comparisons back on the
// work queue, oldest first.
func (s *ComparisonService) requeueUnfinished(ctx context.Context) {
	for _, state := range []domain.ComparisonState{domain.StateProcessing, domain.StateQueued} {
		cmps, err := s.cmpStore.ListByState(ctx, state)
		if err != nil {
			log.Printf("comparison: list %s jobs: %v", state, err)
			continue
		}
		for i := range cmps {
			s.enqueue(cmps[i].ID)
		}
	}
}

// process runs one queued comparison, updating progress as it goes.
func (s *ComparisonService) process(ctx context.Context, id string) {
	cmp, err := s.cmpStore.Get(ctx, id)
	if err != nil {
		log.Printf("comparison: load %s: %v", id, err)
		return
	}
	if cmp.State.IsTerminal() {
		return
	}

	s.transition(ctx, cmp, domain.StateProcessing, 0.2, "Processing documents")

	original, err := s.docStore.GetDocument(ctx, cmp.OriginalDocumentID)
	if err != nil {
		s.fail(ctx, cmp, fmt.Errorf("original document: %w", err))
		return
	}
	modified, err := s.docStore.GetDocument(ctx, cmp.ModifiedDocumentID)
	if err != nil {
		s.fail(ctx, cmp, fmt.Errorf("modified document: %w", err))
		return
	}

	s.transition(ctx, cmp, domain.StateProcessing, 0.6, "Comparing documents")

	result, err := s.compare(ctx, original, modified, cmp.Level)
	if err != nil {
		s.fail(ctx, cmp, err)
		return
	}

	now := time.Now()
	cmp.Result = result
	cmp.CompletedAt = &now
	s.transition(ctx, cmp, domain.StateCompleted, 1.0, "Comparison completed")
}

// transition saves a state change, logging persistence failures.
func (s *ComparisonService) transition(ctx context.Context, cmp *domain.Comparison, state domain.ComparisonState, progress float64, message string) {
	cmp.State = state
	cmp.Progress = progress
	cmp.Message = message
	cmp.UpdatedAt = time.Now()
	if err := s.cmpStore.Save(ctx, cmp); err != nil {
		log.Printf("comparison: save %s: %v", cmp.ID, err)
	}
}

// fail marks a comparison failed with the error message.
func (s *ComparisonService) fail(ctx context.Context, cmp *domain.Comparison, err error) {
	log.Printf("comparison %s failed: %v", cmp.ID, err)
	now := time.Now()
	cmp.CompletedAt = &now
	s.transition(ctx, cmp, domain.StateFailed, cmp.Progress, err.Error())
}

// compare runs the pipeline stages selected by the comparison level.
func (s *ComparisonService) compare(ctx context.Context, original, modified *domain.Document, level domain.ComparisonLevel) (*domain.Result, error) {
	unified, err := diffkit.UnifiedDiff(original.Content, modified.Content)
	if err != nil {
		return nil, fmt.Errorf("unified diff: %w", err)
	}

	result := &domain.Result{
		Differences:     diffkit.WordDiff(original.Content, modified.Content),
		UnifiedDiff:     unified,
		SimilarityScore: diffkit.SimilarityRatio(original.Content, modified.Content),
	}
	logger.Stage("diff", "%d differences, similarity %.2f", len(result.Differences), result.SimilarityScore)

	if level.IncludesStructural() {
		s.compareStructural(original, modified, result)
	}

	if level.IncludesAI() {
		s.compareSemantic(ctx, original, modified, result)
		s.classify(ctx, result)
		s.checkGrammar(ctx, original, modified, result)
	}

	summary := diffkit.BuildSummary(result.Differences)
	if level.IncludesAI() {
		if text := s.narrativeSummary(ctx, result); text != "" {
			summary.Text = text
		}
	}
	result.Summary = &summary

	return result, nil
}

// compareStructural runs the formatting, date and visual stages.
func (s *ComparisonService) compareStructural(original, modified *domain.Document, result *domain.Result) {
	formatting := diffkit.CompareFormatting(original.Formatting, modified.Formatting)
	result.Formatting = &formatting
	result.Differences = append(result.Differences, diffkit.FormatChangeDifferences(formatting)...)

	dates := diffkit.CompareDateReferences(original.Content, modified.Content)
	result.Dates = &dates

	result.Visual = s.compareVisual(original, modified)
	if result.Visual.Applicable && result.Visual.Similarity < s.settings.VisualThreshold {
		result.Differences = append(result.Differences, domain.Difference{
			Type:            domain.DifferenceVisualChange,
			Location:        map[string]any{"scope": "page"},
			OriginalContent: original.Filename,
			ModifiedContent: modified.Filename,
			Metadata: map[string]any{
				"similarity": result.Visual.Similarity,
				"distance":   result.Visual.Distance,
			},
		})
	}
}

// compareVisual compares perception hashes stored at ingest time.
func (s *ComparisonService) compareVisual(original, modified *domain.Document) *domain.VisualFinding {
	h1, ok1 := documentHash(original)
	h2, ok2 := documentHash(modified)
	if !ok1 || !ok2 {
		finding := diffkit.VisualNotApplicable()
		return &finding
	}
	finding := diffkit.CompareVisual(h1, h2, s.settings.VisualThreshold)
	return &finding
}

// documentHash reads the perception hash from document metadata.
func documentHash(doc *domain.Document) (uint64, bool) {
	raw, ok := doc.Metadata["phash"].(string)
	if !ok || raw == "" {
		return 0, false
	}
	hash, err := strconv.ParseUint(raw, 16, 64)
	if err != nil {
		return 0, false
	}
	return hash, true
}

// compareSemantic matches original sentences against their closest
// modified sentence by embedding cosine similarity and reports pairs
// below the semantic threshold.
func (s *ComparisonService) compareSemantic(ctx context.Context, original, modified *domain.Document, result *domain.Result) {
	if s.embedder == nil {
		result.SemanticNote = semanticSkippedNote
		return
	}

	sentences1, vecs1, err := s.embeddedSentences(ctx, original)
	if err != nil {
		result.SemanticNote = "Semantic comparison failed: " + err.Error()
		return
	}
	sentences2, vecs2, err := s.embeddedSentences(ctx, modified)
	if err != nil {
		result.SemanticNote = "Semantic comparison failed: " + err.Error()
		return
	}
	if len(sentences1) == 0 || len(sentences2) == 0 {
		return
	}

	for i, sentence := range sentences1 {
		bestIdx, bestSim := -1, -1.0
		for j := range sentences2 {
			if sim := diffkit.Cosine(vecs1[i], vecs2[j]); sim > bestSim {
				bestIdx, bestSim = j, sim
			}
		}
		if bestIdx < 0 || bestSim >= s.settings.SemanticThreshold {
			continue
		}
		result.Semantic = append(result.Semantic, domain.SemanticFinding{
			OriginalSentence: sentence,
			MatchedSentence:  sentences2[bestIdx],
			Similarity:       bestSim,
			Note:             "Meaning may differ",
		})
	}
	logger.Stage("semantic", "%d sentences vs %d, %d findings", len(sentences1), len(sentences2), len(result.Semantic))
}

// embeddedSentences returns the sentence texts and vectors for a
// document. Chunks stored at ingest time are preferred over re-splitting
// the raw content, and freshly computed vectors are written back to the
// chunks so later comparisons reuse them.
func (s *ComparisonService) embeddedSentences(ctx context.Context, doc *domain.Document) ([]string, [][]float32, error) {
	chunks, err := s.docStore.GetChunks(ctx, doc.ID)
	if err != nil || len(chunks) == 0 {
		texts := diffkit.SplitSentences(doc.Content)
		if len(texts) == 0 {
			return nil, nil, nil
		}
		vecs, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, nil, err
		}
		return texts, vecs, nil
	}

	texts := make([]string, len(chunks))
	vecs := make([][]float32, len(chunks))
	cached := true
	for i := range chunks {
		texts[i] = chunks[i].Content
		vecs[i] = chunks[i].Embedding
		if len(chunks[i].Embedding) == 0 {
			cached = false
		}
	}
	if cached {
		return texts, vecs, nil
	}

	vecs, err = s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, nil, err
	}
	for i := range chunks {
		chunks[i].Embedding = vecs[i]
	}
	if err := s.docStore.SaveChunks(ctx, chunks); err != nil {
		log.Printf("cache chunk embeddings for %s: %v", doc.ID, err)
	}
	return texts, vecs, nil
}

// classify assigns importance and confidence to each difference.
// Pairwise similarity uses embeddings when available and falls back to
// word-set overlap.
func (s *ComparisonService) classify(ctx context.Context, result *domain.Result) {
	for i := range result.Differences {
		d := &result.Differences[i]
		similarity := s.pairwiseSimilarity(ctx, d.OriginalContent, d.ModifiedContent)
		d.Importance = diffkit.ClassifyImportance(
			d.OriginalContent, d.ModifiedContent,
			similarity, s.settings.HighThreshold, s.settings.MediumThreshold,
		)
		d.Confidence = diffkit.Confidence(similarity)
	}
}

// pairwiseSimilarity scores two texts in [0,1].
func (s *ComparisonService) pairwiseSimilarity(ctx context.Context, a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if s.embedder != nil {
		vecs, err := s.embedder.EmbedBatch(ctx, []string{a, b})
		if err == nil && len(vecs) == 2 {
			return diffkit.Cosine(vecs[0], vecs[1])
		}
	}
	return diffkit.Jaccard(a, b)
}

// checkGrammar runs the grammar checker over both documents. A failed
// check degrades to a single note issue so callers can tell it apart
// from a clean document.
func (s *ComparisonService) checkGrammar(ctx context.Context, original, modified *domain.Document, result *domain.Result) {
	if s.grammar == nil {
		return
	}

	issues, err := s.grammar.Check(ctx, original.Content, "")
	if err != nil {
		log.Printf("grammar check (original): %v", err)
		result.GrammarOriginal = grammarFailureNote(err)
	} else {
		result.GrammarOriginal = issues
	}

	issues, err = s.grammar.Check(ctx, modified.Content, "")
	if err != nil {
		log.Printf("grammar check (modified): %v", err)
		result.GrammarModified = grammarFailureNote(err)
	} else {
		result.GrammarModified = issues
	}
	logger.Stage("grammar", "%d/%d issues", len(result.GrammarOriginal), len(result.GrammarModified))
}

// grammarFailureNote is the degraded result of a failed grammar check.
func grammarFailureNote(err error) []domain.GrammarIssue {
	return []domain.GrammarIssue{{Message: "Grammar check failed: " + err.Error()}}
}

// narrativeSummary asks the LLM for a plain-English summary of the
// classified changes. Empty return keeps the deterministic text.
func (s *ComparisonService) narrativeSummary(ctx context.Context, result *domain.Result) string {
	if s.llm == nil || len(result.Differences) == 0 {
		return ""
	}

	prompt := defaultComparisonSummaryPrompt
	if s.prompts != nil {
		if p, err := s.prompts.Load(driven.PromptComparisonSummary); err == nil && p != "" {
			prompt = p
		}
	}

	text, err := s.llm.Generate(ctx, fmt.Sprintf(prompt, changeDigest(result.Differences)), driven.GenerateOptions{
		MaxTokens:   400,
		Temperature: 0.2,
	})
	if err != nil {
		log.Printf("summary generation: %v", err)
		return ""
	}
	return strings.TrimSpace(text)
}

// changeDigest renders differences as a compact list for the summary
// prompt, capped to keep the prompt bounded.
func changeDigest(diffs []domain.Difference) string {
	const maxEntries = 40

	var b strings.Builder
	for i, d := range diffs {
		if i >= maxEntries {
			fmt.Fprintf(&b, "... and %d more changes\n", len(diffs)-maxEntries)
			break
		}
		switch d.Type {
		case domain.DifferenceAddition:
			fmt.Fprintf(&b, "- added: %q", d.ModifiedContent)
		case domain.DifferenceDeletion:
			fmt.Fprintf(&b, "- removed: %q", d.OriginalContent)
		case domain.DifferenceModification:
			fmt.Fprintf(&b, "- changed: %q -> %q", d.OriginalContent, d.ModifiedContent)
		case domain.DifferenceFormatChange:
			fmt.Fprintf(&b, "- formatting changed on: %q", d.OriginalContent)
		case domain.DifferenceVisualChange:
			b.WriteString("- visual layout changed")
		}
		if d.Importance != "" {
			fmt.Fprintf(&b, " [%s importance]", d.Importance)
		}
		b.WriteString("\n")
	}
	return b.String()
}
