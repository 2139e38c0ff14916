package chunker

import (
	"strings"
	"testing"
)

func TestChunkGroupsSentencesWithOverlap(t *testing.T) {
	c := NewSentenceChunker(2, 1, 800)
	chunks := c.Chunk("One. Two. Three. Four.")

	want := []string{"One. Two.", "Two. Three.", "Three. Four."}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d: %+v", len(want), len(chunks), chunks)
	}
	for i, w := range want {
		if chunks[i].Text != w {
			t.Errorf("chunk %d: expected %q, got %q", i, w, chunks[i].Text)
		}
		if chunks[i].Index != i {
			t.Errorf("chunk %d: expected index %d, got %d", i, i, chunks[i].Index)
		}
	}
}

func TestChunkEmptyAndWhitespace(t *testing.T) {
	c := NewSentenceChunker(5, 1, 800)
	if got := c.Chunk(""); got != nil {
		t.Errorf("expected nil for empty input, got %+v", got)
	}
	if got := c.Chunk("   \n\t "); got != nil {
		t.Errorf("expected nil for whitespace input, got %+v", got)
	}
}

func TestChunkNoTerminator(t *testing.T) {
	c := NewSentenceChunker(5, 1, 800)
	chunks := c.Chunk("no terminal punctuation here")
	if len(chunks) != 1 || chunks[0].Text != "no terminal punctuation here" {
		t.Fatalf("expected whole text as one chunk, got %+v", chunks)
	}
}

func TestChunkRespectsMaxChars(t *testing.T) {
	c := NewSentenceChunker(5, 0, 50)
	long := strings.Repeat("word ", 30) + "end."
	chunks := c.Chunk("Short one. " + long + " Short two.")

	for i, ch := range chunks {
		if len(ch.Text) > 50 {
			t.Errorf("chunk %d exceeds max chars (%d): %q", i, len(ch.Text), ch.Text)
		}
	}
	if len(chunks) < 3 {
		t.Errorf("expected oversized sentence to be split, got %d chunks", len(chunks))
	}
}

func TestChunkOverlapNeverStalls(t *testing.T) {
	// Overlap equal to the group size would re-read the same window forever.
	c := NewSentenceChunker(2, 2, 800)
	chunks := c.Chunk("A. B. C. D. E.")
	if len(chunks) == 0 || len(chunks) > 5 {
		t.Fatalf("unexpected chunk count %d", len(chunks))
	}
	last := chunks[len(chunks)-1].Text
	if !strings.Contains(last, "E.") {
		t.Errorf("final chunk should reach the end of input, got %q", last)
	}
}
