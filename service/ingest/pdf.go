package ingest

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const emptyPageMarker = "[empty page]"

// PDFExtractor 按页提取PDF文本，每页前插入页码标记
type PDFExtractor struct{}

var _ Extractor = &PDFExtractor{}

func (e *PDFExtractor) Name() string {
	return "pdf"
}

func (e *PDFExtractor) MIMETypes() []string {
	return []string{"application/pdf"}
}

func (e *PDFExtractor) Extensions() []string {
	return []string{".pdf"}
}

func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)

	// 字体缓存跨页复用，避免每页重复解析字体表
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= numPages; i++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; ok {
				continue
			}
			f := page.Font(name)
			fonts[name] = &f
		}

		text, err := page.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrMalformedDocument, i, err)
		}

		// 文本段以单个空格连接，压缩连续空白
		pages = append(pages, strings.Join(strings.Fields(text), " "))
	}

	return assemblePDFPages(pages)
}

// assemblePDFPages 按页序拼接文本，每页带1-based页码标记
// 无文本的页面插入空页标记而非静默跳过，便于定位扫描页。
// 所有页面均为空视为纯图片文档，提取失败而非返回空串。
func assemblePDFPages(pages []string) (string, error) {
	var sb strings.Builder
	allEmpty := true
	for i, text := range pages {
		fmt.Fprintf(&sb, "--- Page %d ---\n", i+1)
		if text == "" {
			sb.WriteString(emptyPageMarker + "\n")
			continue
		}
		allEmpty = false
		sb.WriteString(text + "\n")
	}

	if len(pages) > 0 && allEmpty {
		return "", ErrImageOnlyDocument
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", ErrNoExtractableText
	}
	return result, nil
}
