package docload

import (
	"errors"
	"testing"
)

func TestLoadText(t *testing.T) {
	out, err := Load("notes.txt", []byte("attendance policy for term one"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "attendance policy for term one" {
		t.Errorf("unexpected text: %q", out)
	}
}

func TestLoadTextInvalidUTF8(t *testing.T) {
	if _, err := Load("notes.txt", []byte{0xff, 0xfe, 0xfd}); err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("slides.pptx", []byte("data"))
	var unsupported *UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedTypeError, got %v", err)
	}
	if unsupported.Extension != ".pptx" {
		t.Errorf("expected .pptx, got %q", unsupported.Extension)
	}
}

func TestLoadExtensionCaseInsensitive(t *testing.T) {
	if _, err := Load("NOTES.TXT", []byte("hello")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadCorruptPDF(t *testing.T) {
	if _, err := Load("report.pdf", []byte("not a real pdf")); err == nil {
		t.Fatal("expected error for corrupt pdf")
	}
}

func TestLoadCorruptDocx(t *testing.T) {
	if _, err := Load("report.docx", []byte("not a real docx")); err == nil {
		t.Fatal("expected error for corrupt docx")
	}
}
