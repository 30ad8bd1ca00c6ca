package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// OllamaService implements NarrationService against the Ollama generate API.
type OllamaService struct {
	baseURL     string
	modelName   string
	maxTokens   int
	temperature float64
	timeout     time.Duration
	httpClient  *http.Client
	logger      *slog.Logger
}

// Ensure OllamaService implements NarrationService.
var _ NarrationService = (*OllamaService)(nil)

// NewOllamaService creates an Ollama-backed narration service. host is the
// bare host:port; the scheme is fixed to http.
func NewOllamaService(host, modelName string, maxTokens int, temperature float64, timeout time.Duration, logger *slog.Logger) *OllamaService {
	return &OllamaService{
		baseURL:     "http://" + host,
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		timeout:     timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	NumPredict  int     `json:"num_predict"`
	Temperature float64 `json:"temperature"`
}

// Generate makes a single non-streaming generate call. Connection failure,
// timeout and non-200 status all collapse to ErrUnavailable.
func (s *OllamaService) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reqBody := generateRequest{
		Model:  s.modelName,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			NumPredict:  s.maxTokens,
			Temperature: s.temperature,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/generate", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	s.logger.Debug("making ollama generate request", "model", s.modelName, "prompt_len", len(prompt))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("ollama request failed", "error", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("ollama returned non-200 status", "status_code", resp.StatusCode)
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var genResp struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		s.logger.Warn("failed to decode ollama response", "error", err)
		return "", fmt.Errorf("%w: bad response body: %v", ErrUnavailable, err)
	}

	return strings.TrimSpace(genResp.Response), nil
}

// Ping checks service reachability via the tags endpoint.
func (s *OllamaService) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}
