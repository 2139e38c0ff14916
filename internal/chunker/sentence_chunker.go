package chunker

import (
	"regexp"
	"strings"
)

// Chunk is one retrieval unit produced from an uploaded document.
type Chunk struct {
	Index int
	Text  string
}

// SentenceChunker splits text into sentence-based chunks with overlap.
// Chunks never exceed maxChars; an oversized sentence is hard-split.
type SentenceChunker struct {
	sentencesPerChunk int
	overlapSentences  int
	maxChars          int
	splitter          *regexp.Regexp
}

func NewSentenceChunker(sentencesPerChunk, overlapSentences, maxChars int) *SentenceChunker {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	if overlapSentences < 0 {
		overlapSentences = 0
	}
	if overlapSentences >= sentencesPerChunk {
		overlapSentences = sentencesPerChunk - 1
	}
	if maxChars <= 0 {
		maxChars = 800
	}
	return &SentenceChunker{
		sentencesPerChunk: sentencesPerChunk,
		overlapSentences:  overlapSentences,
		maxChars:          maxChars,
		splitter:          regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
	}
}

func (c *SentenceChunker) Chunk(content string) []Chunk {
	sentences := c.splitter.FindAllString(content, -1)
	if len(sentences) == 0 {
		trimmed := strings.TrimSpace(content)
		if trimmed == "" {
			return nil
		}
		sentences = []string{trimmed}
	}
	for i := range sentences {
		sentences[i] = strings.TrimSpace(sentences[i])
	}
	sentences = c.splitOversized(sentences)

	var chunks []Chunk
	i := 0
	idx := 0
	for i < len(sentences) {
		end := i + c.sentencesPerChunk
		if end > len(sentences) {
			end = len(sentences)
		}

		// Shrink the group so the joined text stays within maxChars.
		for end > i+1 && joinedLen(sentences[i:end]) > c.maxChars {
			end--
		}

		chunks = append(chunks, Chunk{
			Index: idx,
			Text:  strings.Join(sentences[i:end], " "),
		})
		if end == len(sentences) {
			break
		}
		next := end - c.overlapSentences
		if next <= i {
			next = i + 1
		}
		i = next
		idx++
	}
	return chunks
}

// splitOversized hard-splits any single sentence longer than maxChars on
// rune boundaries.
func (c *SentenceChunker) splitOversized(sentences []string) []string {
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if len(s) <= c.maxChars {
			out = append(out, s)
			continue
		}
		runes := []rune(s)
		for len(runes) > 0 {
			n := c.maxChars
			if n > len(runes) {
				n = len(runes)
			}
			out = append(out, string(runes[:n]))
			runes = runes[n:]
		}
	}
	return out
}

func joinedLen(sentences []string) int {
	n := len(sentences) - 1
	for _, s := range sentences {
		n += len(s)
	}
	return n
}
