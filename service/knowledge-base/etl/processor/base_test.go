package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectMetadata(t *testing.T) {
	tests := []struct {
		name       string
		objectName string
		wantTitle  string
		wantEmail  string
	}{
		{
			name:       "knowledge base object",
			objectName: "alice@example.com/knowledge-base/1724457600000_report.pdf",
			wantTitle:  "report.pdf",
			wantEmail:  "alice@example.com",
		},
		{
			name:       "session object",
			objectName: "bob@example.com/sessions/abc-123/1724457600000_notes.docx",
			wantTitle:  "notes.docx",
			wantEmail:  "bob@example.com",
		},
		{
			name:       "file name with underscores",
			objectName: "alice@example.com/knowledge-base/1724457600000_q3_sales_2026.xlsx",
			wantTitle:  "q3_sales_2026.xlsx",
			wantEmail:  "alice@example.com",
		},
		{
			name:       "no timestamp prefix",
			objectName: "alice@example.com/knowledge-base/plain.txt",
			wantTitle:  "plain.txt",
			wantEmail:  "alice@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, email := objectMetadata(tt.objectName)
			assert.Equal(t, tt.wantTitle, title)
			assert.Equal(t, tt.wantEmail, email)
		})
	}
}
