// Package storage 封装OSS对象存储操作
package storage

import (
	"bytes"
	"context"
	"doc-agent-backend/config"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
)

const presignExpiration = 15 * time.Minute

var (
	client     *oss.Client
	clientOnce sync.Once
)

func ossClient() *oss.Client {
	clientOnce.Do(func() {
		cfg := &oss.Config{
			Region: oss.Ptr(config.Cfg.OSS.Region),
			CredentialsProvider: credentials.NewStaticCredentialsProvider(
				config.Cfg.OSS.AccessKeyID,
				config.Cfg.OSS.AccessKeySecret,
			),
		}
		client = oss.NewClient(cfg)
	})
	return client
}

func PutObject(ctx context.Context, objectName string, data []byte) error {
	_, err := ossClient().PutObject(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(config.Cfg.OSS.BucketName),
		Key:    oss.Ptr(objectName),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("failed to put object to oss: %v", err)
	}
	return nil
}

func GetObject(ctx context.Context, objectName string) ([]byte, error) {
	result, err := ossClient().GetObject(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(config.Cfg.OSS.BucketName),
		Key:    oss.Ptr(objectName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from oss: %v", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %v", err)
	}

	return data, nil
}

func DeleteObject(ctx context.Context, objectName string) error {
	_, err := ossClient().DeleteObject(ctx, &oss.DeleteObjectRequest{
		Bucket: oss.Ptr(config.Cfg.OSS.BucketName),
		Key:    oss.Ptr(objectName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from oss: %v", err)
	}
	return nil
}

// GeneratePresignedURL 生成临时下载链接
func GeneratePresignedURL(ctx context.Context, objectName string) (string, error) {
	result, err := ossClient().Presign(ctx, &oss.GetObjectRequest{
		Bucket: oss.Ptr(config.Cfg.OSS.BucketName),
		Key:    oss.Ptr(objectName),
	}, oss.PresignExpires(presignExpiration))
	if err != nil {
		return "", fmt.Errorf("failed to presign object url: %v", err)
	}
	return result.URL, nil
}
