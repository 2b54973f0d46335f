package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"strings"
)

// OOXML（docx/xlsx）本质是zip包，以magic number区分新旧格式，
// 扩展名为.doc的文件实际可能是重命名的.docx
var zipMagic = []byte("PK\x03\x04")

// WordExtractor 提取Word文档文本，丢弃样式
// 新版docx解包zip后流式读取XML字符内容，旧版doc回退到可打印字符扫描。
type WordExtractor struct{}

var _ Extractor = &WordExtractor{}

func (e *WordExtractor) Name() string {
	return "word"
}

func (e *WordExtractor) MIMETypes() []string {
	return []string{
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
}

func (e *WordExtractor) Extensions() []string {
	return []string{".docx", ".doc"}
}

func (e *WordExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if bytes.HasPrefix(data, zipMagic) {
		return extractOOXMLText(ctx, data, "word/")
	}

	text := extractPrintableRuns(data)
	if text == "" {
		return "", ErrNoExtractableText
	}
	return text, nil
}

// extractOOXMLText 解包OOXML容器，收集指定目录下XML条目的字符内容
func extractOOXMLText(ctx context.Context, data []byte, entryPrefix string) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	var sb strings.Builder
	for _, f := range zr.File {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		name := strings.ToLower(f.Name)
		if !strings.HasPrefix(name, entryPrefix) || !strings.HasSuffix(name, ".xml") {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			// 单个条目损坏不视为致命错误
			slog.Warn("failed to open ooxml entry", "entry", f.Name, "err", err)
			continue
		}

		dec := xml.NewDecoder(rc)
		for {
			tok, err := dec.Token()
			if err != nil {
				break
			}
			if cd, ok := tok.(xml.CharData); ok && len(cd) > 0 {
				sb.Write(cd)
				sb.WriteByte(' ')
			}
		}
		_ = rc.Close()
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrNoExtractableText
	}
	return text, nil
}

const printableRunMinLength = 4

// extractPrintableRuns 旧版二进制Office格式没有可依赖的解码器，
// 扫描长度不小于4的可打印字符序列作为近似文本
func extractPrintableRuns(data []byte) string {
	var sb strings.Builder
	var run []byte
	flush := func() {
		if len(run) >= printableRunMinLength {
			sb.Write(bytes.TrimSpace(run))
			sb.WriteByte('\n')
		}
		run = run[:0]
	}

	for _, b := range data {
		if b >= 0x20 && b < 0x7f {
			run = append(run, b)
			continue
		}
		flush()
	}
	flush()

	return strings.TrimSpace(sb.String())
}
