package processor

import (
	"context"
	"doc-agent-backend/config"
	"doc-agent-backend/utils"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/milvus-io/milvus/client/v2/column"
	client "github.com/milvus-io/milvus/client/v2/milvusclient"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/textsplitter"
)

const (
	defaultEmbeddingModel     = "text-embedding-v4"
	defaultEmbeddingBatchSize = 10
	embeddingHTTPTimeout      = 60 * time.Second

	chunkSize    = 4000
	chunkOverlap = 200

	// 与Milvus集合schema保持一致
	vectorDim      = 1024
	CollectionName = "knowledge_doc"
)

var (
	milvusClient     *client.Client
	milvusClientOnce sync.Once
	milvusClientErr  error
)

// BaseETLProcessor 各类型处理器的公共部分：向量化与向量库写入
type BaseETLProcessor struct {
	TextSplitter textsplitter.TextSplitter
	Embedder     embeddings.Embedder
	MilvusClient *client.Client
}

func NewBaseETLProcessor(textSplitter textsplitter.TextSplitter) (*BaseETLProcessor, error) {
	llm, err := openai.New(
		openai.WithEmbeddingModel(defaultEmbeddingModel),
		openai.WithToken(config.Cfg.Model.APIKey),
		openai.WithBaseURL(config.Cfg.Model.BaseURL),
		openai.WithHTTPClient(utils.NewHTTPClient(utils.WithTimeout(embeddingHTTPTimeout))),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder client: %v", err)
	}

	embedder, err := embeddings.NewEmbedder(llm,
		embeddings.WithBatchSize(defaultEmbeddingBatchSize),
		embeddings.WithStripNewLines(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %v", err)
	}

	mc, err := sharedMilvusClient(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create milvus client: %v", err)
	}

	return &BaseETLProcessor{
		TextSplitter: textSplitter,
		Embedder:     embedder,
		MilvusClient: mc,
	}, nil
}

func sharedMilvusClient(ctx context.Context) (*client.Client, error) {
	milvusClientOnce.Do(func() {
		milvusClient, milvusClientErr = client.New(ctx, &client.ClientConfig{
			Address: config.Cfg.Milvus.Endpoint,
			APIKey:  config.Cfg.Milvus.APIKey,
		})
	})
	return milvusClient, milvusClientErr
}

// embedAndInsert 向量化文本chunk并连同元数据写入Milvus
func (p *BaseETLProcessor) embedAndInsert(ctx context.Context, texts []string, objectName string) error {
	if len(texts) == 0 {
		return nil
	}

	vectors, err := p.Embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("error embedding texts: %v", err)
	}

	columns := []column.Column{
		column.NewColumnVarChar("text", texts),
		column.NewColumnFloatVector("vector", vectorDim, vectors),
	}
	columns = append(columns, metadataColumns(len(texts), objectName)...)

	insertOption := client.NewColumnBasedInsertOption(CollectionName).WithColumns(columns...)
	if _, err := p.MilvusClient.Insert(ctx, insertOption); err != nil {
		return fmt.Errorf("error inserting chunks: %v", err)
	}

	return nil
}

// objectMetadata 从对象路径解析元数据。
// 路径形如 {email}/knowledge-base/{timestamp}_{filename}
func objectMetadata(objectName string) (title, userEmail string) {
	userEmail, _, _ = strings.Cut(objectName, "/")

	title = path.Base(objectName)
	if _, name, ok := strings.Cut(title, "_"); ok && name != "" {
		title = name
	}
	return title, userEmail
}

func metadataColumns(count int, objectName string) []column.Column {
	title, userEmail := objectMetadata(objectName)

	titles := make([]string, count)
	emails := make([]string, count)
	objects := make([]string, count)
	for i := range count {
		titles[i] = title
		emails[i] = userEmail
		objects[i] = objectName
	}

	return []column.Column{
		column.NewColumnVarChar("title", titles),
		column.NewColumnVarChar("user_email", emails),
		column.NewColumnVarChar("object_name", objects),
	}
}

// DeleteChunksByObjectName 删除指定文档的全部向量chunk
func DeleteChunksByObjectName(ctx context.Context, objectName string) error {
	mc, err := sharedMilvusClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create milvus client: %v", err)
	}

	expr := fmt.Sprintf(`object_name == "%s"`, objectName)
	_, err = mc.Delete(ctx, client.NewDeleteOption(CollectionName).WithExpr(expr))
	if err != nil {
		return fmt.Errorf("error deleting chunks: %v", err)
	}

	return nil
}
