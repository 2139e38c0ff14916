package usecase

import (
	"fmt"
	"strings"

	"edupal/internal/chat"
	"edupal/internal/chat/repository"
)

func listOptions(threadID string, page, pageSize int) repository.ListExchangesOptions {
	return repository.ListExchangesOptions{
		ThreadID: threadID,
		Page:     page,
		PageSize: pageSize,
	}
}

// stripCodeFences removes a wrapping markdown code fence from model output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop a language tag like "json" on the opening fence.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		first := strings.TrimSpace(s[:i])
		if len(first) <= 10 && !strings.ContainsAny(first, "{}") {
			s = s[i+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// renderRecords flattens normalized records into the snippet block the
// synthesizer consumes. Field order is preserved.
func renderRecords(records []chat.NormalizedRecord) string {
	if len(records) == 0 {
		return noRecordsMarker
	}

	var sb strings.Builder
	for i, rec := range records {
		sb.WriteString(fmt.Sprintf("Record %d: ", i+1))
		for j, f := range rec.Fields {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			sb.WriteString(f.Value)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderChunks flattens retrieved document chunks into the snippet block the
// synthesizer consumes, most relevant first.
func renderChunks(chunks []chat.ScoredChunk) string {
	if len(chunks) == 0 {
		return noRecordsMarker
	}

	var sb strings.Builder
	for i, sc := range chunks {
		sb.WriteString(fmt.Sprintf("Excerpt %d (relevance %.0f%%):\n%s\n\n", i+1, sc.Score*100, sc.Chunk.Text))
	}
	return sb.String()
}

// truncateText caps model output echoes in error payloads, rune-safe.
func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
