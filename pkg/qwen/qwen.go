package qwen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// newQwenImpl creates a new Qwen implementation
func newQwenImpl(cfg Config) *qwenImpl {
	return &qwenImpl{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
	}
}

// GenerateContent sends a chat completion request to the Qwen API
func (q *qwenImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(q.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("qwen: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		q.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("qwen: failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+q.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := q.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("qwen: API call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("qwen: failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr wireError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("qwen: API error %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("qwen: API error %d: %s", resp.StatusCode, string(respBody))
	}

	var wireResp wireResponse
	if err := json.Unmarshal(respBody, &wireResp); err != nil {
		return nil, fmt.Errorf("qwen: failed to decode response: %w", err)
	}

	return q.parseResponse(&wireResp), nil
}

// Model returns the model being used
func (q *qwenImpl) Model() string {
	return q.model
}

// buildRequest converts the request to OpenAI-compatible wire format
func (q *qwenImpl) buildRequest(req *Request) *wireRequest {
	wireReq := &wireRequest{
		Model:       q.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    make([]wireMessage, 0, len(req.Messages)+1),
	}

	if req.SystemInstruction != nil {
		wireReq.Messages = append(wireReq.Messages, wireMessage{
			Role:    "system",
			Content: joinParts(req.SystemInstruction.Parts),
		})
	}

	for i := range req.Messages {
		wireReq.Messages = append(wireReq.Messages, wireMessage{
			Role:    req.Messages[i].Role,
			Content: joinParts(req.Messages[i].Parts),
		})
	}

	return wireReq
}

func joinParts(parts []Part) string {
	var out string
	for _, p := range parts {
		if p.Text == "" {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += p.Text
	}
	return out
}

// parseResponse converts the wire response to the client format
func (q *qwenImpl) parseResponse(resp *wireResponse) *Response {
	out := &Response{
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}

	if len(resp.Choices) == 0 {
		return out
	}

	choice := resp.Choices[0]
	out.Content = Content{
		Role:  choice.Message.Role,
		Parts: []Part{{Text: choice.Message.Content}},
	}

	return out
}
