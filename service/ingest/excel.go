package ingest

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelExtractor 按工作簿定义的顺序导出各工作表的文本
// 每个工作表前插入1-based序号和表名标记，行内单元格以tab分隔。
type ExcelExtractor struct{}

var _ Extractor = &ExcelExtractor{}

func (e *ExcelExtractor) Name() string {
	return "excel"
}

func (e *ExcelExtractor) MIMETypes() []string {
	return []string{
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}
}

func (e *ExcelExtractor) Extensions() []string {
	return []string{".xlsx", ".xls"}
}

func (e *ExcelExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if !bytes.HasPrefix(data, zipMagic) {
		// 旧版xls二进制格式，回退到可打印字符扫描
		text := extractPrintableRuns(data)
		if text == "" {
			return "", ErrNoExtractableText
		}
		return text, nil
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	defer wb.Close()

	var sb strings.Builder
	for i, sheet := range wb.GetSheetList() {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		rows, err := wb.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("%w: sheet %q: %v", ErrMalformedDocument, sheet, err)
		}

		fmt.Fprintf(&sb, "--- Sheet %d: %s ---\n", i+1, sheet)
		for _, row := range rows {
			sb.WriteString(strings.Join(row, "\t"))
			sb.WriteByte('\n')
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrNoExtractableText
	}
	return text, nil
}
