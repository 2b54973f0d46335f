// Package knowledgebase 知识库文档的元数据管理与OSS直传凭证
package knowledgebase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"doc-agent-backend/config"
	"doc-agent-backend/dao"
	"doc-agent-backend/model"
	"doc-agent-backend/request"
	"doc-agent-backend/response"
	"doc-agent-backend/service/knowledge-base/etl"
	"doc-agent-backend/service/mq"
	"doc-agent-backend/service/storage"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

const (
	signatureVersion = "OSS4-HMAC-SHA256"
	policyExpiration = time.Hour

	v4SigningKeyPrefix = "aliyun_v4"
	v4RequestSuffix    = "aliyun_v4_request"
	v4Product          = "oss"
)

// UploadDocumentMetadata 保存文档元数据并投递ETL任务
func UploadDocumentMetadata(ctx context.Context, email string, req request.UploadDocumentMetadataRequest) (*model.DocumentMetadata, error) {
	metadata := &model.DocumentMetadata{
		UserEmail:  email,
		SessionID:  req.SessionID,
		FileName:   req.FileName,
		FileType:   model.FileType(req.FileType),
		FileSize:   req.FileSize,
		ObjectName: req.ObjectName,
		Status:     model.StatusUploaded,
	}

	if err := dao.SaveDocumentMetadata(metadata); err != nil {
		return nil, fmt.Errorf("failed to save document metadata: %v", err)
	}

	err := mq.SendMessage(ctx, &mq.Message{
		Topic: mq.TopicKnowledgeBase,
		Tag:   mq.TagETL,
		Payload: etl.ETLMessage{
			FileType:   metadata.FileType,
			ObjectName: metadata.ObjectName,
		},
	})
	if err != nil {
		return nil, err
	}

	return metadata, nil
}

// DeleteDocument 删除OSS对象、向量数据与元数据记录
func DeleteDocument(ctx context.Context, objectName string) error {
	err := mq.SendMessage(ctx, &mq.Message{
		Topic: mq.TopicKnowledgeBase,
		Tag:   mq.TagDelete,
		Payload: etl.DeleteMessage{
			ObjectName: objectName,
		},
	})
	if err != nil {
		return err
	}

	if err := storage.DeleteObject(ctx, objectName); err != nil {
		return err
	}

	if err := dao.DeleteDocumentMetadataByObjectName(objectName); err != nil {
		return fmt.Errorf("failed to delete document metadata: %v", err)
	}

	return nil
}

// GeneratePolicyToken 生成OSS V4签名的PostObject直传凭证，
// 上传目录限制在用户自己的前缀下
func GeneratePolicyToken(email string) (*response.GetPolicyTokenResponse, error) {
	ossCfg := config.Cfg.OSS

	now := time.Now().UTC()
	date := now.Format("20060102")
	ossDate := now.Format("20060102T150405Z")
	dir := email + "/"

	credential := fmt.Sprintf("%s/%s/%s/%s/%s",
		ossCfg.AccessKeyID, date, ossCfg.Region, v4Product, v4RequestSuffix)

	policy := map[string]any{
		"expiration": now.Add(policyExpiration).Format("2006-01-02T15:04:05.000Z"),
		"conditions": []any{
			map[string]string{"bucket": ossCfg.BucketName},
			map[string]string{"x-oss-signature-version": signatureVersion},
			map[string]string{"x-oss-credential": credential},
			map[string]string{"x-oss-date": ossDate},
			[]any{"starts-with", "$key", dir},
		},
	}

	policyJSON, err := json.Marshal(policy)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal policy: %v", err)
	}
	policyBase64 := base64.StdEncoding.EncodeToString(policyJSON)

	signingKey := hmacSHA256([]byte(v4SigningKeyPrefix+ossCfg.AccessKeySecret), []byte(date))
	signingKey = hmacSHA256(signingKey, []byte(ossCfg.Region))
	signingKey = hmacSHA256(signingKey, []byte(v4Product))
	signingKey = hmacSHA256(signingKey, []byte(v4RequestSuffix))
	signature := hex.EncodeToString(hmacSHA256(signingKey, []byte(policyBase64)))

	return &response.GetPolicyTokenResponse{
		Policy:           policyBase64,
		SignatureVersion: signatureVersion,
		Credential:       credential,
		Date:             ossDate,
		Signature:        signature,
		Host:             fmt.Sprintf("https://%s.oss-%s.aliyuncs.com", ossCfg.BucketName, ossCfg.Region),
		Dir:              dir,
	}, nil
}

func hmacSHA256(key, data []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}
