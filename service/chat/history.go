package chat

import (
	"context"
	"doc-agent-backend/dao"
	"doc-agent-backend/model"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	historyLimit = 200
)

// ChatHistory 单轮对话的消息持久化，
// 记录本轮写入的消息ID，供摘要任务异步处理
type ChatHistory struct {
	SessionID string

	UserMessageID      uint
	AssistantMessageID uint
}

func NewChatHistory(sessionID string) *ChatHistory {
	return &ChatHistory{
		SessionID: sessionID,
	}
}

// RecentMessages 加载会话内最近的消息，有摘要时用摘要代替原文以降低token消耗
func (h *ChatHistory) RecentMessages(ctx context.Context) ([]string, error) {
	var messages []struct {
		Content string
		Summary string
		Role    string
	}

	result := dao.DB.WithContext(ctx).
		Model(&model.Message{}).
		Select("content, summary, role").
		Where("session_id = ?", h.SessionID).
		Order("created_at ASC").
		Limit(historyLimit).
		Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}

	history := make([]string, 0, len(messages))
	for _, msg := range messages {
		content := msg.Content
		if msg.Summary != "" {
			content = msg.Summary
		}
		history = append(history, msg.Role+": "+content)
	}
	return history, nil
}

func (h *ChatHistory) AddUserMessage(ctx context.Context, text string) error {
	return h.addMessage(ctx, RoleUser, text)
}

func (h *ChatHistory) AddAssistantMessage(ctx context.Context, text string) error {
	return h.addMessage(ctx, RoleAssistant, text)
}

func (h *ChatHistory) addMessage(ctx context.Context, role, text string) error {
	msg := &model.Message{
		SessionID: h.SessionID,
		Role:      role,
		Content:   text,
	}

	if err := dao.DB.WithContext(ctx).Create(msg).Error; err != nil {
		return err
	}

	switch role {
	case RoleUser:
		h.UserMessageID = msg.ID
	case RoleAssistant:
		h.AssistantMessageID = msg.ID
	}

	return nil
}
