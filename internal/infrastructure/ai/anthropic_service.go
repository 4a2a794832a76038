package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/nexile/pharmacy-api/internal/application/ports"
)

var _ ports.InsightService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
)

// jsonBlockRe extrae el primer objeto JSON de la respuesta: a diferencia de
// Gemini, la API de mensajes no garantiza salida JSON pura y puede envolverla
// en un bloque de código.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// AnthropicService adaptador alternativo de InsightService sobre la API de
// mensajes de Anthropic. Se selecciona con AI_PROVIDER=anthropic.
type AnthropicService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 25 * time.Second,
		},
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// BusinessInsights implementa ports.InsightService.
func (s *AnthropicService) BusinessInsights(ctx context.Context, summary ports.BusinessSummary) ([]string, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}

	userText, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar resumen: %w", err)
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: string(userText)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("AI: llamada a Anthropic: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	var out anthropicResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("AI: Anthropic respondió error %s: %s", out.Error.Type, out.Error.Message)
	}
	if len(out.Content) == 0 {
		return nil, fmt.Errorf("AI: respuesta sin contenido")
	}

	raw := jsonBlockRe.FindString(out.Content[0].Text)
	if raw == "" {
		return nil, fmt.Errorf("AI: el modelo no devolvió JSON")
	}

	var parsed insightsPayload
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("AI: el modelo no devolvió el JSON esperado: %w", err)
	}
	return parsed.Insights, nil
}
