package http

import (
	"time"

	"edupal/internal/chat"
)

// --- Request DTOs ---

type queryReq struct {
	Query    string `json:"query"     binding:"required,min=1,max=2000"`
	ThreadID string `json:"thread_id" binding:"omitempty,uuid"`
	Emotion  string `json:"emotion"   binding:"omitempty,max=50"`
	Language string `json:"language"  binding:"omitempty,max=10"`
}

func (r queryReq) toInput() chat.QueryInput {
	return chat.QueryInput{
		Query:    r.Query,
		ThreadID: r.ThreadID,
		Emotion:  r.Emotion,
		Language: r.Language,
	}
}

type historyReq struct {
	ThreadID string `form:"thread_id" binding:"required,uuid"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

func (r historyReq) toInput() chat.HistoryInput {
	return chat.HistoryInput{
		ThreadID: r.ThreadID,
		Page:     r.Page,
		PageSize: r.PageSize,
	}
}

// --- Response DTOs ---

type queryResp struct {
	ThreadID    string          `json:"thread_id"`
	Response    string          `json:"response"`
	Intent      string          `json:"intent"`
	Confidence  string          `json:"confidence"`
	Resources   []chat.Resource `json:"resources"`
	Suggestions []string        `json:"suggestions"`
}

func newQueryResp(out chat.QueryOutput) queryResp {
	return queryResp{
		ThreadID:    out.ThreadID,
		Response:    out.Response,
		Intent:      string(out.Intent),
		Confidence:  out.Confidence,
		Resources:   out.Resources,
		Suggestions: out.Suggestions,
	}
}

type voiceQueryResp struct {
	Transcript string `json:"transcript"`
	queryResp
	Audio string `json:"audio,omitempty"` // base64, present when requested
}

type imageQueryResp struct {
	Response    string          `json:"response"`
	Resources   []chat.Resource `json:"resources"`
	Suggestions []string        `json:"suggestions"`
}

type ingestResp struct {
	DocumentID string `json:"document_id"`
	ChunkCount int    `json:"chunk_count"`
}

type exchangeItem struct {
	Query     string `json:"query"`
	Response  string `json:"response"`
	Emotion   string `json:"emotion,omitempty"`
	CreatedAt string `json:"created_at"`
}

type historyResp struct {
	Items      []exchangeItem `json:"items"`
	TotalPages int            `json:"total_pages"`
}

func newHistoryResp(out chat.HistoryOutput) historyResp {
	items := make([]exchangeItem, 0, len(out.Items))
	for _, e := range out.Items {
		items = append(items, exchangeItem{
			Query:     e.Query,
			Response:  e.Response,
			Emotion:   e.Emotion,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return historyResp{Items: items, TotalPages: out.TotalPages}
}
