package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Resolve(t *testing.T) {
	registry := DefaultRegistry()

	tests := []struct {
		name     string
		mimeType string
		fileName string
		want     string
	}{
		{
			name:     "exact mime match",
			mimeType: "application/pdf",
			fileName: "anything.bin",
			want:     "pdf",
		},
		{
			name:     "mime match wins over extension",
			mimeType: "text/csv",
			fileName: "data.xlsx",
			want:     "csv",
		},
		{
			name:     "extension fallback when mime is empty",
			mimeType: "",
			fileName: "report.pdf",
			want:     "pdf",
		},
		{
			name:     "extension fallback when mime is generic",
			mimeType: "application/octet-stream",
			fileName: "notes.docx",
			want:     "word",
		},
		{
			name:     "extension match is case-insensitive",
			mimeType: "",
			fileName: "DATA.CSV",
			want:     "csv",
		},
		{
			name:     "json treated as plain text",
			mimeType: "",
			fileName: "config.json",
			want:     "text",
		},
		{
			name:     "legacy word extension",
			mimeType: "",
			fileName: "old.doc",
			want:     "word",
		},
		{
			name:     "legacy excel extension",
			mimeType: "",
			fileName: "old.xls",
			want:     "excel",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := registry.Resolve(tt.mimeType, tt.fileName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, e.Name())
		})
	}
}

func TestRegistry_ResolveUnsupported(t *testing.T) {
	registry := DefaultRegistry()

	tests := []struct {
		name     string
		mimeType string
		fileName string
	}{
		{
			name:     "unknown format",
			mimeType: "video/mp4",
			fileName: "movie.mp4",
		},
		{
			// PowerPoint 可上传但没有注册提取器
			name:     "powerpoint has no extractor",
			mimeType: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
			fileName: "slides.pptx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.Resolve(tt.mimeType, tt.fileName)
			require.ErrorIs(t, err, ErrUnsupportedFormat)

			// 错误信息携带文件名和观测到的类型，便于排查
			assert.Contains(t, err.Error(), tt.fileName)
			assert.Contains(t, err.Error(), tt.mimeType)
		})
	}
}
