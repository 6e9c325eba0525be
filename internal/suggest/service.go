// Package suggest generates reply suggestions for classified emails through
// an external generative-language API. All failure modes resolve to a
// descriptive Portuguese string embedded in the per-message result; nothing
// in here ever aborts a batch.
package suggest

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"triagem/internal/models"
)

// Provider issues a single generation request against an external API.
// Implementations return the first candidate's text, or "" when the response
// carried no usable content.
type Provider interface {
	Name() string
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
)

// Fixed user-facing fallback strings.
const (
	msgDisabled     = "Erro: Chave de API não configurada. Serviço de sugestão desativado."
	msgNoSuggestion = "Nenhuma sugestão gerada."
	msgUnknown      = "Erro desconhecido ao processar a sugestão."
)

// Service wraps a Provider with the retry/backoff policy: a bounded number
// of attempts, a per-attempt timeout, and exponential backoff between
// retryable failures.
type Service struct {
	provider Provider
	timeout  time.Duration
	attempts int

	// sleep is injected by tests to observe backoff without real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewService(provider Provider, timeout time.Duration, attempts int) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}
	return &Service{
		provider: provider,
		timeout:  timeout,
		attempts: attempts,
		sleep:    sleepContext,
	}
}

// Suggest returns a reply suggestion for the given email text and assigned
// label. It never returns an error: a missing credential, a non-retryable
// API status, an exhausted retry budget, or a malformed response each map to
// a fixed descriptive string.
func (s *Service) Suggest(ctx context.Context, text string, label models.Label) string {
	if s.provider == nil {
		return msgDisabled
	}

	systemPrompt, userPrompt := buildPrompt(text, label)

	// Explicit retry state: the attempt counter and the last observed fault
	// drive the suspend-and-retry transitions below.
	var last fault
	for attempt := 0; attempt < s.attempts; attempt++ {
		reply, err := s.generateOnce(ctx, systemPrompt, userPrompt)
		if err == nil {
			if reply == "" {
				return msgNoSuggestion
			}
			return reply
		}

		last = classifyFault(err)
		if last.kind == faultNonRetryableStatus {
			log.Warnf("suggestion request rejected by %s (status %d): %v", s.provider.Name(), last.status, err)
			return fmt.Sprintf("Erro ao gerar sugestão: Requisição inválida (Status %d).", last.status)
		}

		if attempt == s.attempts-1 {
			break
		}
		delay := backoffDelay(attempt)
		log.Warnf("suggestion attempt %d/%d against %s failed (%v), retrying in %s", attempt+1, s.attempts, s.provider.Name(), err, delay)
		if serr := s.sleep(ctx, delay); serr != nil {
			// Caller went away mid-backoff; report the same way as an
			// exhausted connection budget.
			return exhaustedMessage(fault{kind: faultConnection})
		}
	}

	log.Warnf("suggestion retry budget exhausted after %d attempts against %s", s.attempts, s.provider.Name())
	return exhaustedMessage(last)
}

// Close releases provider resources, if the provider holds any.
func (s *Service) Close() error {
	if closer, ok := s.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (s *Service) generateOnce(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.provider.Generate(attemptCtx, systemPrompt, userPrompt)
}

func exhaustedMessage(last fault) string {
	switch last.kind {
	case faultRetryableStatus:
		return fmt.Sprintf("Erro ao gerar sugestão: Limite de tentativas excedido (Status %d).", last.status)
	case faultConnection:
		return "Erro de conexão: Limite de tentativas excedido."
	}
	return msgUnknown
}

// backoffDelay doubles per attempt: 1s after the first failure, 2s after the
// second.
func backoffDelay(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// buildPrompt embeds the assigned label into the fixed persona instruction
// and wraps the original (non-normalized) email text as the user payload.
func buildPrompt(text string, label models.Label) (systemPrompt, userPrompt string) {
	systemPrompt = fmt.Sprintf(
		"You are an AI assistant specialized in professional email responses in Portuguese. "+
			"The user provides an email which you have classified as '%s'. "+
			"Your task is to generate a concise, professional, and actionable draft response (maximum 3 sentences) in Portuguese. "+
			"Do not include any introductory text or commentary, just the suggested reply.", label)
	userPrompt = fmt.Sprintf("O e-mail para responder é:\n---\n%s\n---", text)
	return systemPrompt, userPrompt
}
