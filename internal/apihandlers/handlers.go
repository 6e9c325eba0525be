package apihandlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"triagem/internal/models"
)

// skippedSentinel is the display marker emitted for messages the
// short-message rule kept away from the classifier. It is distinct from an
// empty processed_text, which means the normalizer removed every token.
const skippedSentinel = "N/A (Poucas palavras)"

// Processor is the slice of the pipeline service the handlers need.
type Processor interface {
	ProcessMessages(ctx context.Context, messages []string) ([]models.Result, error)
	Ready() bool
}

// ProcessTextRequest mirrors the inbound JSON contract: a possibly empty
// list of email bodies.
type ProcessTextRequest struct {
	Message []string `json:"message"`
}

type MessageResult struct {
	OriginalText   string `json:"original_text"`
	Classification string `json:"classification"`
	ProcessedText  string `json:"processed_text"`
	Suggestion     string `json:"suggestion"`
}

type ProcessTextResponse struct {
	Status         string          `json:"status"`
	ProcessedCount int             `json:"processed_count"`
	Results        []MessageResult `json:"results"`
	Detail         string          `json:"detail,omitempty"`
}

type APIHandler struct {
	pipeline Processor
}

func NewAPIHandler(pipeline Processor) *APIHandler {
	return &APIHandler{pipeline: pipeline}
}

// ProcessTextHandler classifies a batch of messages and attaches reply
// suggestions. A non-empty batch with unloaded artifacts fails uniformly
// with 503; per-message suggestion failures are embedded in the results and
// never fail the request.
func (h *APIHandler) ProcessTextHandler(c *gin.Context) {
	var req ProcessTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	logger := log.WithFields(log.Fields{
		"request_id": uuid.NewString(),
		"messages":   len(req.Message),
	})

	results, err := h.pipeline.ProcessMessages(c.Request.Context(), req.Message)
	if err != nil {
		if errors.Is(err, models.ErrModelUnavailable) {
			logger.Warn("classification requested but model artifacts are not loaded")
			ServiceUnavailable(c, "Modelos ML não carregados. Por favor, garanta que os artefatos do vetorizador e do classificador existam.")
			return
		}
		logger.Errorf("process messages: %v", err)
		Internal(c, "failed to process messages")
		return
	}

	resp := ProcessTextResponse{
		Status:         "success",
		ProcessedCount: len(results),
		Results:        make([]MessageResult, 0, len(results)),
	}
	if len(req.Message) == 0 {
		resp.Detail = "Lista vazia recebida, nenhum processamento realizado."
	}
	for _, r := range results {
		processed := r.ProcessedText
		if r.Skipped {
			processed = skippedSentinel
		}
		resp.Results = append(resp.Results, MessageResult{
			OriginalText:   r.OriginalText,
			Classification: r.Label.DisplayName(),
			ProcessedText:  processed,
			Suggestion:     r.Suggestion,
		})
	}

	logger.Info("batch processed")
	c.JSON(http.StatusOK, resp)
}

// HealthHandler reports liveness plus whether classification is currently
// possible.
func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"model_loaded": h.pipeline.Ready(),
	})
}
