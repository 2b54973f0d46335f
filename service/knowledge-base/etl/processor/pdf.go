package processor

import (
	"bytes"
	"context"
	"doc-agent-backend/model"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/textsplitter"
)

// PDFETLProcessor PDF文件ETL处理器
type PDFETLProcessor struct {
	BaseETLProcessor
}

var _ ETLProcessor = &PDFETLProcessor{}

func NewPDFETLProcessor() (*PDFETLProcessor, error) {
	textSplitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithSeparators([]string{"\n\n", "\n", "。", "！", "？", "；", "，", " ", ""}),
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
	)

	baseETLProcessor, err := NewBaseETLProcessor(textSplitter)
	if err != nil {
		return nil, err
	}

	return &PDFETLProcessor{
		BaseETLProcessor: *baseETLProcessor,
	}, nil
}

func (p *PDFETLProcessor) CanProcess(fileType model.FileType) bool {
	return fileType == model.FileTypePDF
}

func (p *PDFETLProcessor) ExecuteETLPipeline(ctx context.Context, object []byte, objectName string) error {
	reader := bytes.NewReader(object)
	loader := documentloaders.NewPDF(reader, int64(len(object)))

	docs, err := loader.LoadAndSplit(ctx, p.TextSplitter)
	if err != nil {
		return fmt.Errorf("error loading and spliting pdf: %v", err)
	}

	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		texts = append(texts, doc.PageContent)
	}

	slog.Debug("split pdf successfully",
		"object_name", objectName,
		"texts_num", len(texts),
	)

	return p.embedAndInsert(ctx, texts, objectName)
}
