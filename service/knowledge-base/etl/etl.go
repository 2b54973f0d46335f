// Package etl 消费知识库消息，完成文档的切分、向量化与清理
package etl

import (
	"context"
	"doc-agent-backend/dao"
	"doc-agent-backend/model"
	"doc-agent-backend/service/knowledge-base/etl/processor"
	"doc-agent-backend/service/storage"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/apache/rocketmq-client-go/v2/primitive"
)

// 知识文件ETL处理器注册表
var etlProcessorRegistry []processor.ETLProcessor

type ETLMessage struct {
	FileType   model.FileType `json:"file_type"`
	ObjectName string         `json:"object_name"`
}

type DeleteMessage struct {
	ObjectName string `json:"object_name"`
}

// Init 构建ETL处理器注册表，须在配置加载后调用
func Init() error {
	markdownProcessor, err := processor.NewMarkdownETLProcessor()
	if err != nil {
		return fmt.Errorf("error creating MarkdownETLProcessor: %v", err)
	}

	pdfProcessor, err := processor.NewPDFETLProcessor()
	if err != nil {
		return fmt.Errorf("error creating PDFETLProcessor: %v", err)
	}

	officeProcessor, err := processor.NewOfficeETLProcessor()
	if err != nil {
		return fmt.Errorf("error creating OfficeETLProcessor: %v", err)
	}

	etlProcessorRegistry = []processor.ETLProcessor{
		markdownProcessor,
		pdfProcessor,
		officeProcessor,
	}
	return nil
}

func HandleETLMessage(ctx context.Context, msg *primitive.MessageExt) error {
	var etlMessage ETLMessage
	if err := json.Unmarshal(msg.Body, &etlMessage); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %v", err)
	}

	object, err := storage.GetObject(ctx, etlMessage.ObjectName)
	if err != nil {
		return err
	}

	// 查找匹配文件类型的处理器，执行ETL流程
	for _, p := range etlProcessorRegistry {
		if !p.CanProcess(etlMessage.FileType) {
			continue
		}

		if err := p.ExecuteETLPipeline(ctx, object, etlMessage.ObjectName); err != nil {
			markProcessFailed(etlMessage.ObjectName)
			return fmt.Errorf("failed to execute ETL pipeline: %v", err)
		}

		if err := dao.UpdateDocumentMetadataStatus(etlMessage.ObjectName, model.StatusProcessed); err != nil {
			return fmt.Errorf("failed to update document status: %v", err)
		}
		return nil
	}

	// 没有匹配的处理器，重试无意义，标记失败后直接确认消息
	slog.Warn("No ETL processor found for file type",
		"file_type", etlMessage.FileType,
		"object_name", etlMessage.ObjectName,
	)
	markProcessFailed(etlMessage.ObjectName)
	return nil
}

func HandleDeleteMessage(ctx context.Context, msg *primitive.MessageExt) error {
	var deleteMessage DeleteMessage
	if err := json.Unmarshal(msg.Body, &deleteMessage); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %v", err)
	}

	if err := processor.DeleteChunksByObjectName(ctx, deleteMessage.ObjectName); err != nil {
		return err
	}

	slog.Info("Deleted document chunks", "object_name", deleteMessage.ObjectName)
	return nil
}

func markProcessFailed(objectName string) {
	if err := dao.UpdateDocumentMetadataStatus(objectName, model.StatusProcessedFailed); err != nil {
		slog.Error("Failed to mark document as failed",
			"object_name", objectName,
			"err", err,
		)
	}
}
