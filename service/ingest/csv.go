package ingest

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
)

const csvColumnDelimiter = " | "

// CSVExtractor 将CSV渲染为带表头标记的行文本
// 首行作为表头，带 "Headers: " 前缀，行序严格保持输入顺序。
type CSVExtractor struct{}

var _ Extractor = &CSVExtractor{}

func (e *CSVExtractor) Name() string {
	return "csv"
}

func (e *CSVExtractor) MIMETypes() []string {
	return []string{"text/csv"}
}

func (e *CSVExtractor) Extensions() []string {
	return []string{".csv"}
}

func (e *CSVExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	// 允许行之间字段数不一致
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	var lines []string
	for _, record := range records {
		fields := make([]string, 0, len(record))
		empty := true
		for _, field := range record {
			field = strings.TrimSpace(field)
			if field != "" {
				empty = false
			}
			fields = append(fields, field)
		}

		// 跳过空行
		if empty {
			continue
		}

		line := strings.Join(fields, csvColumnDelimiter)
		if len(lines) == 0 {
			line = "Headers: " + line
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return "", ErrNoExtractableText
	}
	return strings.Join(lines, "\n"), nil
}
