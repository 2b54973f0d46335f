package processor

import (
	"context"
	"doc-agent-backend/model"
	"doc-agent-backend/service/ingest"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

// OfficeETLProcessor Office与CSV文件ETL处理器，
// 复用上传解析链路的文本提取器获取纯文本
type OfficeETLProcessor struct {
	BaseETLProcessor

	registry *ingest.Registry
}

var _ ETLProcessor = &OfficeETLProcessor{}

func NewOfficeETLProcessor() (*OfficeETLProcessor, error) {
	textSplitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithSeparators([]string{"\n\n", "\n", "。", "！", "？", "；", "，", " ", ""}),
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	baseETLProcessor, err := NewBaseETLProcessor(textSplitter)
	if err != nil {
		return nil, err
	}

	return &OfficeETLProcessor{
		BaseETLProcessor: *baseETLProcessor,
		registry:         ingest.DefaultRegistry(),
	}, nil
}

func (p *OfficeETLProcessor) CanProcess(fileType model.FileType) bool {
	switch fileType {
	case model.FileTypeWord, model.FileTypeWordLegacy,
		model.FileTypeExcel, model.FileTypeExcelLegacy,
		model.FileTypeCSV:
		return true
	}
	return false
}

func (p *OfficeETLProcessor) ExecuteETLPipeline(ctx context.Context, object []byte, objectName string) error {
	// 对象路径以原始文件名结尾，按扩展名选择提取器
	extractor, err := p.registry.Resolve("", objectName)
	if err != nil {
		return err
	}

	text, err := extractor.Extract(ctx, object)
	if err != nil {
		return fmt.Errorf("error extracting office document: %v", err)
	}

	chunks, err := p.TextSplitter.SplitText(text)
	if err != nil {
		return fmt.Errorf("error splitting office document: %v", err)
	}

	texts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		texts = append(texts, chunk)
	}

	slog.Debug("split office document successfully",
		"object_name", objectName,
		"texts_num", len(texts),
	)

	return p.embedAndInsert(ctx, texts, objectName)
}
