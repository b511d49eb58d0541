// Package gemini реализует суммаризацию заметок через Google Gemini.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"gogetmemo/internal/memos/config"
	"gogetmemo/internal/memos/domain/entities"
	"gogetmemo/internal/memos/ports/services"
	"gogetmemo/pkg/logger"
)

// APIKeyName - имя обязательного параметра с ключом API.
const APIKeyName = "GEMINI_API_KEY"

const promptTemplate = "Summarize the key points of the following memo as 3-5 concise bullet points. " +
	"Write each point as a single sentence and format the result as a bulleted list.\n\n" +
	"Memo content:\n%s"

// Константы для сообщений об ошибках.
const (
	ErrCreateClient = "failed to create gemini client"
)

// Причины ошибок шлюза.
const (
	ReasonRequest     = "request failed"
	ReasonStatus      = "unexpected upstream status"
	ReasonEmpty       = "empty response"
	ReasonUnavailable = "upstream temporarily unavailable"
)

// Summarizer вызывает generateContent и возвращает текст ответа модели.
type Summarizer struct {
	cfg     config.GeminiConfig
	models  *genai.Models
	breaker *gobreaker.CircuitBreaker
}

var _ services.Summarizer = (*Summarizer)(nil)

// NewSummarizer создает клиента Gemini. Пустой ключ API не является ошибкой:
// клиент не создается, а Summarize возвращает ConfigError.
// Если httpClient равен nil, используется клиент genai по умолчанию.
func NewSummarizer(ctx context.Context, cfg config.GeminiConfig, httpClient *http.Client) (*Summarizer, error) {
	s := &Summarizer{cfg: cfg, breaker: newBreaker()}

	if cfg.APIKey == "" {
		logger.Log(ctx).Warn(ctx, "gemini api key is not configured, summarization disabled")
		return s, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.Endpoint,
			APIVersion: cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateClient, err)
	}

	s.models = client.Models
	return s, nil
}

func newBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Log(context.Background()).Warn(context.Background(), "circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
}

// Summarize отправляет content в модель. Без ключа API сетевой вызов не выполняется.
// Повторных попыток нет: открытый предохранитель сразу возвращает GatewayError.
func (s *Summarizer) Summarize(ctx context.Context, content string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "Summarizer.Summarize"))

	if s.models == nil {
		log.Error(ctx, "gemini api key is not configured")
		return "", &entities.ConfigError{Key: APIKeyName}
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.generate(ctx, content)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &entities.GatewayError{Reason: ReasonUnavailable, Err: err}
		}
		log.Error(ctx, "summarization failed", zap.Error(err))
		return "", err
	}

	summary, _ := result.(string)
	log.Debug(ctx, "summary generated", zap.Int("length", len(summary)))
	return summary, nil
}

func (s *Summarizer) generate(ctx context.Context, content string) (string, error) {
	resp, err := s.models.GenerateContent(ctx, s.cfg.Model,
		genai.Text(fmt.Sprintf(promptTemplate, content)),
		&genai.GenerateContentConfig{
			MaxOutputTokens: int32(s.cfg.MaxOutputTokens),
			Temperature:     genai.Ptr(float32(s.cfg.Temperature)),
		},
	)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &entities.GatewayError{
				Reason: ReasonStatus,
				Err:    fmt.Errorf("status %d: %s", apiErr.Code, apiErr.Message),
			}
		}
		return "", &entities.GatewayError{Reason: ReasonRequest, Err: err}
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &entities.GatewayError{Reason: ReasonEmpty}
	}

	return text, nil
}
