/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// OllamaConfig holds the Ollama server configuration
type OllamaConfig struct {
	URL   string
	Model string
	// Timeout bounds one summary request. Zero means two minutes.
	Timeout time.Duration
	// RequestsPerMinute caps summary requests. Zero disables the limit.
	RequestsPerMinute int
}

// OpenAI-compatible request/response structures
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream,omitempty"`
}

type chatChoice struct {
	Delta chatMessage `json:"delta,omitempty"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

const (
	defaultSummaryTimeout = 2 * time.Minute
	maxSummaryErrorBody   = 4 << 10
)

const summarySystemPrompt = "You explain lab reports to patients in plain language. " +
	"List every measured test on its own line as **Test Name:** value unit, " +
	"using the exact numbers from the report. After the list, add a short plain-language " +
	"overview of anything outside its reference range. Do not use headings."

const explainSystemPrompt = "You explain medical terms to patients in simple English. " +
	"Give a one or two sentence definition, a phonetic pronunciation and one " +
	"real-life example. Answer in plain text without headings."

// GetOllamaConfig loads Ollama configuration from environment variables
func GetOllamaConfig() (*OllamaConfig, error) {
	url := os.Getenv("OLLAMA_URL")
	model := os.Getenv("OLLAMA_MODEL")

	if url == "" || model == "" {
		return nil, ErrSummarizerNotConfigured
	}

	return &OllamaConfig{URL: url, Model: model}, nil
}

// Summarizer turns raw report text into a plain-language summary through an
// OpenAI-compatible chat completion endpoint.
type Summarizer struct {
	endpoint   string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSummarizer creates a summarizer for config.
func NewSummarizer(config OllamaConfig) (*Summarizer, error) {
	if config.URL == "" || config.Model == "" {
		return nil, ErrSummarizerNotConfigured
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultSummaryTimeout
	}

	limit := rate.Inf
	if config.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(config.RequestsPerMinute))
	}

	return &Summarizer{
		endpoint:   strings.TrimSuffix(config.URL, "/") + "/v1/chat/completions",
		model:      config.Model,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
	}, nil
}

// SummarizeReport returns the complete summary for content.
func (s *Summarizer) SummarizeReport(ctx context.Context, filename, content string) (string, error) {
	var sb strings.Builder

	err := s.StreamReportSummary(ctx, filename, content, func(chunk string) error {
		sb.WriteString(chunk)
		return nil
	})
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		return "", errEmptySummary
	}

	return summary, nil
}

// StreamReportSummary streams the summary for content, calling onChunk for
// every piece of text received.
func (s *Summarizer) StreamReportSummary(ctx context.Context, filename, content string, onChunk func(string) error) error {
	return s.streamChat(ctx, []chatMessage{
		{Role: "system", Content: summarySystemPrompt},
		{Role: "user", Content: buildReportPrompt(filename, content)},
	}, onChunk)
}

// ExplainTerm returns a short plain-language explanation of a medical term.
func (s *Summarizer) ExplainTerm(ctx context.Context, term string) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", ErrTermRequired
	}

	var sb strings.Builder

	err := s.streamChat(ctx, []chatMessage{
		{Role: "system", Content: explainSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Explain the medical term %q.", term)},
	}, func(chunk string) error {
		sb.WriteString(chunk)
		return nil
	})
	if err != nil {
		return "", err
	}

	explanation := strings.TrimSpace(sb.String())
	if explanation == "" {
		return "", errEmptyExplanation
	}

	return explanation, nil
}

// streamChat sends messages as one streaming chat completion. It waits for
// the rate limiter first.
func (s *Summarizer) streamChat(ctx context.Context, messages []chatMessage, onChunk func(string) error) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("summarizer rate limit: %w", err)
	}

	reqBody := chatRequest{
		Model:    s.model,
		Stream:   true,
		Messages: messages,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Ollama: %w", err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("Failed to close Ollama response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxSummaryErrorBody))
		return fmt.Errorf("Ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return readChatStream(resp.Body, onChunk)
}

// readChatStream consumes server-sent events until [DONE] or EOF.
func readChatStream(body io.Reader, onChunk func(string) error) error {
	reader := bufio.NewReader(body)

	for {
		line, err := reader.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read stream: %w", err)
		}

		data, ok := strings.CutPrefix(strings.TrimSpace(string(line)), "data: ")
		if ok {
			if data == "[DONE]" {
				return nil
			}

			var chatResp chatResponse
			if jsonErr := json.Unmarshal([]byte(data), &chatResp); jsonErr != nil {
				logger.Debug("Skipping malformed stream chunk", "error", jsonErr)
			} else if chatResp.Error != nil {
				return fmt.Errorf("Ollama error: %s", chatResp.Error.Message)
			} else if len(chatResp.Choices) > 0 && chatResp.Choices[0].Delta.Content != "" {
				if err := onChunk(chatResp.Choices[0].Delta.Content); err != nil {
					return err
				}
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
	}
}

func buildReportPrompt(filename, content string) string {
	var sb strings.Builder

	sb.WriteString("Please summarize the following lab report")
	if filename != "" {
		fmt.Fprintf(&sb, " (%s)", filename)
	}
	sb.WriteString(":\n\n---\n\n")
	sb.WriteString(strings.TrimSpace(content))
	sb.WriteString("\n\n---\n")

	return sb.String()
}
