package processor

import (
	"bytes"
	"context"
	"doc-agent-backend/model"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/documentloaders"
	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/textsplitter"
)

// MarkdownETLProcessor Markdown文件ETL处理器，兼容Text与JSON文件
type MarkdownETLProcessor struct {
	BaseETLProcessor
}

var _ ETLProcessor = &MarkdownETLProcessor{}

func NewMarkdownETLProcessor() (*MarkdownETLProcessor, error) {
	separators := []string{"\n\n", "\n", "。", "！", "？", "；", "，", " ", ""}
	textSplitter := textsplitter.NewMarkdownTextSplitter(
		textsplitter.WithChunkSize(chunkSize),
		textsplitter.WithChunkOverlap(chunkOverlap),
		textsplitter.WithHeadingHierarchy(true), // 保留父级标题信息
		textsplitter.WithSecondSplitter(textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
			textsplitter.WithSeparators(separators),
		)),
	)

	baseETLProcessor, err := NewBaseETLProcessor(textSplitter)
	if err != nil {
		return nil, err
	}

	return &MarkdownETLProcessor{
		BaseETLProcessor: *baseETLProcessor,
	}, nil
}

func (p *MarkdownETLProcessor) CanProcess(fileType model.FileType) bool {
	return fileType == model.FileTypeMarkdown ||
		fileType == model.FileTypeText ||
		fileType == model.FileTypeJSON
}

func (p *MarkdownETLProcessor) ExecuteETLPipeline(ctx context.Context, object []byte, objectName string) error {
	reader := bytes.NewReader(object)
	loader := documentloaders.NewText(reader)

	docs, err := loader.LoadAndSplit(ctx, p.TextSplitter)
	if err != nil {
		return fmt.Errorf("error loading and spliting markdown: %v", err)
	}

	// 过滤只有孤立标题的chunk
	docs = filterStandaloneHeaders(docs)

	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		texts = append(texts, doc.PageContent)
	}

	slog.Debug("split markdown successfully",
		"object_name", objectName,
		"texts_num", len(texts),
	)

	return p.embedAndInsert(ctx, texts, objectName)
}

// 匹配形如 "# xxx ## xxx" 的chunk
var headerOnlyRegex = regexp.MustCompile(`^\s*(?:#{1,6}\s+.+\n?)+\s*$`)

func filterStandaloneHeaders(docs []schema.Document) []schema.Document {
	var filteredDocs []schema.Document
	for _, doc := range docs {
		content := strings.TrimSpace(doc.PageContent)
		if content == "" {
			continue
		}

		if headerOnlyRegex.MatchString(content) {
			continue
		}

		filteredDocs = append(filteredDocs, doc)
	}
	return filteredDocs
}
