package ingest

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "safe name unchanged", in: "report-2024_v1.pdf", want: "report-2024_v1.pdf"},
		{name: "spaces replaced", in: "my report.pdf", want: "my_report.pdf"},
		{name: "path components stripped", in: "../../etc/passwd", want: "passwd"},
		{name: "unicode replaced", in: "报告.pdf", want: "__.pdf"},
		{name: "empty name falls back", in: "", want: "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.in))
		})
	}
}

func TestObjectName(t *testing.T) {
	kb := ObjectName("user@example.com", "", "notes.md")
	assert.Regexp(t, regexp.MustCompile(`^user@example\.com/knowledge-base/\d+_notes\.md$`), kb)

	session := ObjectName("user@example.com", "sess-123", "notes.md")
	assert.Regexp(t, regexp.MustCompile(`^user@example\.com/sessions/sess-123/\d+_notes\.md$`), session)
}
