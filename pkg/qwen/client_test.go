package qwen_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"edupal/pkg/qwen"
)

func TestQwenClient(t *testing.T) {
	var gotReq struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-qwen-key" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"message":"invalid api key","type":"auth_error"}}`))
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"model": "qwen-plus",
			"choices": [
				{"index": 0, "message": {"role": "assistant", "content": "The fee is due Friday."}, "finish_reason": "stop"}
			],
			"usage": {"prompt_tokens": 12, "completion_tokens": 7, "total_tokens": 19}
		}`))
	}))
	defer ts.Close()

	client, err := qwen.New(qwen.Config{APIKey: "test-qwen-key", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	t.Run("Success Flow", func(t *testing.T) {
		resp, err := client.GenerateContent(context.Background(), &qwen.Request{
			SystemInstruction: &qwen.Content{Parts: []qwen.Part{{Text: "You answer school questions."}}},
			Messages: []qwen.Content{
				{Role: "user", Parts: []qwen.Part{{Text: "When is the fee due?"}}},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(gotReq.Messages) != 2 {
			t.Fatalf("expected 2 wire messages, got %d", len(gotReq.Messages))
		}
		if gotReq.Messages[0].Role != "system" || gotReq.Messages[0].Content != "You answer school questions." {
			t.Errorf("system instruction not mapped: %+v", gotReq.Messages[0])
		}
		if gotReq.Messages[1].Role != "user" {
			t.Errorf("expected user role, got %q", gotReq.Messages[1].Role)
		}

		if len(resp.Content.Parts) != 1 || resp.Content.Parts[0].Text != "The fee is due Friday." {
			t.Errorf("unexpected content: %+v", resp.Content)
		}
		if resp.Usage == nil || resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 7 || resp.Usage.TotalTokens != 19 {
			t.Errorf("unexpected usage: %+v", resp.Usage)
		}
	})

	t.Run("Multi Part Messages Join With Newline", func(t *testing.T) {
		_, err := client.GenerateContent(context.Background(), &qwen.Request{
			Messages: []qwen.Content{
				{Role: "user", Parts: []qwen.Part{{Text: "line one"}, {Text: "line two"}}},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotReq.Messages[0].Content != "line one\nline two" {
			t.Errorf("parts not joined: %q", gotReq.Messages[0].Content)
		}
	})

	t.Run("API Error Flow", func(t *testing.T) {
		badClient, _ := qwen.New(qwen.Config{APIKey: "bad-key", BaseURL: ts.URL})
		_, err := badClient.GenerateContent(context.Background(), &qwen.Request{
			Messages: []qwen.Content{{Role: "user", Parts: []qwen.Part{{Text: "hi"}}}},
		})
		if err == nil || !strings.Contains(err.Error(), "invalid api key") {
			t.Fatalf("expected auth error with API message, got %v", err)
		}
	})

	t.Run("Missing API Key", func(t *testing.T) {
		if _, err := qwen.New(qwen.Config{}); err == nil {
			t.Fatal("expected config validation error")
		}
	})
}
