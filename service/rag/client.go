// Package rag 外部RAG检索问答服务的HTTP客户端
package rag

import (
	"bytes"
	"context"
	"doc-agent-backend/config"
	"doc-agent-backend/utils"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
)

const askAttempts = 3

// AskRequest file_contents为按上传顺序排列的文档提取文本，
// 提取失败的文件以占位错误串表示，RAG服务端会将其忽略。
// history为本轮之前的会话消息，长消息已被摘要替换
type AskRequest struct {
	UserID       string   `json:"user_id"`
	SessionID    string   `json:"session_id"`
	Question     string   `json:"question"`
	History      []string `json:"history"`
	FileContents []string `json:"file_contents"`
	IndexUser    bool     `json:"index_user"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

var (
	httpClient     *http.Client
	httpClientOnce sync.Once
)

func ragHTTPClient() *http.Client {
	httpClientOnce.Do(func() {
		httpClient = utils.NewHTTPClient(
			utils.WithTimeout(time.Duration(config.Cfg.RAG.TimeoutSeconds) * time.Second),
		)
	})
	return httpClient
}

// Ask 调用RAG服务回答问题，带退避重试
func Ask(ctx context.Context, req AskRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal ask request: %v", err)
	}

	var answer string
	err = retry.Do(
		func() error {
			result, err := doAsk(ctx, payload)
			if err != nil {
				return err
			}
			answer = result
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(askAttempts),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("Retrying RAG request",
				"attempt", n+1,
				"session_id", req.SessionID,
				"err", err,
			)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("rag request failed after retries: %v", err)
	}

	return answer, nil
}

func doAsk(ctx context.Context, payload []byte) (string, error) {
	url := config.Cfg.RAG.Endpoint + "/ask"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := ragHTTPClient().Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to call rag service: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("rag service returned status %d: %s", resp.StatusCode, body)
	}

	var result askResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode rag response: %v", err)
	}

	return result.Answer, nil
}
