package deepseek_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"edupal/pkg/deepseek"
)

func TestDeepSeekClient(t *testing.T) {
	var gotReq deepseek.Request

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-deepseek-key" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"authentication failed","type":"auth_error"}}`))
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"id": "chatcmpl-2",
			"model": "deepseek-chat",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "The bus leaves at 3pm."}, "finish_reason": "stop"}
			],
			"usage": {"prompt_tokens": 9, "completion_tokens": 6, "total_tokens": 15}
		}`))
	}))
	defer ts.Close()

	client, err := deepseek.New(deepseek.Config{APIKey: "test-deepseek-key", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	t.Run("Success Flow", func(t *testing.T) {
		resp, err := client.GenerateContent(context.Background(), &deepseek.Request{
			Messages: []deepseek.Message{
				{Role: "system", Content: "You answer school questions."},
				{Role: "user", Content: "When does the bus leave?"},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotReq.Model != deepseek.DefaultModel {
			t.Errorf("expected default model on the wire, got %q", gotReq.Model)
		}
		if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
			t.Errorf("unexpected wire messages: %+v", gotReq.Messages)
		}

		if len(resp.Choices) != 1 || resp.Choices[0].Message.Content != "The bus leaves at 3pm." {
			t.Errorf("unexpected choices: %+v", resp.Choices)
		}
		if resp.Usage.PromptTokens != 9 || resp.Usage.CompletionTokens != 6 || resp.Usage.TotalTokens != 15 {
			t.Errorf("unexpected usage: %+v", resp.Usage)
		}
	})

	t.Run("API Error Flow", func(t *testing.T) {
		badClient, _ := deepseek.New(deepseek.Config{APIKey: "bad-key", BaseURL: ts.URL})
		_, err := badClient.GenerateContent(context.Background(), &deepseek.Request{
			Messages: []deepseek.Message{{Role: "user", Content: "hi"}},
		})
		if err == nil || !strings.Contains(err.Error(), "authentication failed") {
			t.Fatalf("expected auth error with API message, got %v", err)
		}
	})

	t.Run("Missing API Key", func(t *testing.T) {
		if _, err := deepseek.New(deepseek.Config{}); err == nil {
			t.Fatal("expected config validation error")
		}
	})
}
