// Package extract turns uploaded documents into plain text for downstream
// language-model processing.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

var (
	ErrUnsupportedType = errors.New("unsupported document type")
	ErrEmptyDocument   = errors.New("document contains no text")
)

// Extractor converts a raw uploaded file into UTF-8 text. Implementations
// that call external services should honor the deadline on any context they
// are constructed with.
type Extractor interface {
	Extract(content []byte, filename, contentType string) (string, error)
	// Accepted names the file types Extract handles, for client-facing
	// error messages.
	Accepted() string
}

// TextExtractor handles plain-text uploads. Binary formats such as PDF and
// scanned images are routed to dedicated converters upstream of this service
// and arrive here already as text.
type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

func (e *TextExtractor) Extract(content []byte, filename, contentType string) (string, error) {
	if !isTextType(filename, contentType) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, describeType(filename, contentType))
	}
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: file is not valid UTF-8 text", ErrUnsupportedType)
	}

	text := strings.TrimSpace(string(content))
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

func (e *TextExtractor) Accepted() string {
	return ".txt, .text, .md"
}

func isTextType(filename, contentType string) bool {
	if strings.HasPrefix(contentType, "text/") {
		return true
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".text", ".md":
		return true
	}
	return false
}

func describeType(filename, contentType string) string {
	if contentType != "" {
		return contentType
	}
	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}
	return "unknown"
}
