// Package chat 对话主流程：持久化消息、调用RAG服务并经SSE推送回答
package chat

import (
	"context"
	"doc-agent-backend/dao"
	"doc-agent-backend/model"
	"doc-agent-backend/request"
	"doc-agent-backend/service/rag"
	"doc-agent-backend/service/summarization"
	"doc-agent-backend/utils"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
)

const (
	// 回答按固定字符数切块推送，前端实现打字机效果
	answerChunkRunes = 40

	// 新会话标题取首条提问的前若干字符
	maxSessionTitleRunes = 20
)

// Stream 处理一轮对话
func Stream(ctx context.Context, c *gin.Context, email string, req request.ChatRequest) error {
	if err := ensureSession(email, req.SessionID, req.Query); err != nil {
		return err
	}

	history := NewChatHistory(req.SessionID)
	recent, err := history.RecentMessages(ctx)
	if err != nil {
		return fmt.Errorf("failed to load chat history: %v", err)
	}

	if err := history.AddUserMessage(ctx, req.Query); err != nil {
		return fmt.Errorf("failed to persist user message: %v", err)
	}

	answer, err := rag.Ask(ctx, rag.AskRequest{
		UserID:       email,
		SessionID:    req.SessionID,
		Question:     req.Query,
		History:      recent,
		FileContents: req.FileContents,
		IndexUser:    req.IndexUser,
	})
	if err != nil {
		return err
	}

	for _, chunk := range chunkAnswer(answer, answerChunkRunes) {
		utils.SendSSEMessage(c, utils.EventAnswer, chunk)
	}

	if err := history.AddAssistantMessage(ctx, answer); err != nil {
		slog.Error("Failed to persist assistant message",
			"session_id", req.SessionID,
			"err", err,
		)
	}

	if history.UserMessageID != 0 && history.AssistantMessageID != 0 {
		summarization.SummarizerInstance.RegisterSummaryTask(summarization.SummaryTask{
			MessageIDs: []uint{history.UserMessageID, history.AssistantMessageID},
		})
	}

	return nil
}

// ensureSession 首轮对话时创建会话
func ensureSession(email, sessionID, query string) error {
	session, err := dao.GetSessionByID(email, sessionID)
	if err != nil {
		return fmt.Errorf("failed to query session: %v", err)
	}
	if session != nil {
		return nil
	}

	title := model.DefaultSessionTitle
	if runes := []rune(query); len(runes) > 0 {
		if len(runes) > maxSessionTitleRunes {
			runes = runes[:maxSessionTitleRunes]
		}
		title = string(runes)
	}

	if err := dao.CreateSession(&model.Session{
		UserEmail: email,
		SessionID: sessionID,
		Title:     title,
	}); err != nil {
		return fmt.Errorf("failed to create session: %v", err)
	}

	return nil
}

func chunkAnswer(answer string, size int) []string {
	runes := []rune(answer)
	var chunks []string
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
