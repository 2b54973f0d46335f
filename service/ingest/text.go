package ingest

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// TextExtractor 纯文本直接透传，覆盖txt/md/json
type TextExtractor struct{}

var _ Extractor = &TextExtractor{}

func (e *TextExtractor) Name() string {
	return "text"
}

func (e *TextExtractor) MIMETypes() []string {
	return []string{"text/plain", "text/markdown", "application/json"}
}

func (e *TextExtractor) Extensions() []string {
	return []string{".txt", ".md", ".json"}
}

func (e *TextExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: not valid utf-8 text", ErrMalformedDocument)
	}
	return string(data), nil
}
