// Package pipeline orchestrates the per-message classification flow: the
// short-message business rule, normalization, TF-IDF vectorization, linear
// classification, and reply suggestion.
package pipeline

import (
	"context"
	"strings"

	"triagem/internal/mlmodel"
	"triagem/internal/models"
	"triagem/internal/textnorm"
)

// wordCountThreshold is the short-message cutoff. Messages with this many
// whitespace-delimited words or fewer ("Obrigado", "Ok, entendido") carry no
// classifiable signal and numerically destabilize a sparse TF-IDF
// representation, so they are labeled unproductive without touching the
// model.
const wordCountThreshold = 4

// ModelEngine is the pair of pre-fitted artifact functions the pipeline
// consumes. Implementations must be pure and safe for concurrent use.
type ModelEngine interface {
	Vectorize(text string) mlmodel.FeatureVector
	Classify(vec mlmodel.FeatureVector) models.Label
}

// Suggester produces a reply suggestion for a classified message. It must
// not fail: failures are encoded in the returned string.
type Suggester interface {
	Suggest(ctx context.Context, text string, label models.Label) string
}

// Service processes message batches. The engine may be nil when the model
// artifacts failed to load; every non-empty batch is then rejected with
// models.ErrModelUnavailable.
type Service struct {
	engine    ModelEngine
	suggester Suggester
}

func NewService(engine ModelEngine, suggester Suggester) *Service {
	return &Service{engine: engine, suggester: suggester}
}

// Ready reports whether the model artifacts are loaded.
func (s *Service) Ready() bool {
	return s.engine != nil
}

// ShouldShortCircuit applies the short-message rule to the raw,
// non-normalized text.
func ShouldShortCircuit(text string) bool {
	return len(strings.Fields(text)) <= wordCountThreshold
}

// ProcessMessages classifies each message and attaches a reply suggestion,
// preserving input order. Messages are independent: a degenerate input or a
// failed suggestion in one item never affects the others. An empty batch
// succeeds without loaded artifacts; a non-empty batch requires them and
// fails as a whole otherwise, with no partial results.
func (s *Service) ProcessMessages(ctx context.Context, messages []string) ([]models.Result, error) {
	results := make([]models.Result, 0, len(messages))
	if len(messages) == 0 {
		return results, nil
	}
	if !s.Ready() {
		return nil, models.ErrModelUnavailable
	}

	for _, text := range messages {
		res := models.Result{OriginalText: text}
		if ShouldShortCircuit(text) {
			res.Label = models.LabelUnproductive
			res.Skipped = true
		} else {
			res.ProcessedText = textnorm.Normalize(text)
			vec := s.engine.Vectorize(res.ProcessedText)
			res.Label = s.engine.Classify(vec)
		}
		// The suggestion always sees the original text, whichever path
		// assigned the label.
		res.Suggestion = s.suggester.Suggest(ctx, text, res.Label)
		results = append(results, res)
	}
	return results, nil
}
