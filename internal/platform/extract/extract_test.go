package extract

import (
	"errors"
	"testing"
)

func TestExtract_PlainText(t *testing.T) {
	e := NewTextExtractor()

	text, err := e.Extract([]byte("  CBC panel: WBC 12.1 elevated\n"), "labs.txt", "text/plain")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "CBC panel: WBC 12.1 elevated" {
		t.Errorf("got %q", text)
	}
}

func TestExtract_TypeByExtension(t *testing.T) {
	e := NewTextExtractor()

	// Some clients omit or misreport the content type.
	if _, err := e.Extract([]byte("report body"), "report.TXT", "application/octet-stream"); err != nil {
		t.Errorf("expected .txt extension to be accepted, got %v", err)
	}
}

func TestExtract_RejectsBinary(t *testing.T) {
	e := NewTextExtractor()

	_, err := e.Extract([]byte{0x25, 0x50, 0x44, 0x46}, "scan.pdf", "application/pdf")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestExtract_RejectsInvalidUTF8(t *testing.T) {
	e := NewTextExtractor()

	_, err := e.Extract([]byte{0xff, 0xfe, 0x00}, "notes.txt", "text/plain")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	e := NewTextExtractor()

	_, err := e.Extract([]byte("   \n\t "), "empty.txt", "text/plain")
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}
