package controller

import (
	"context"
	"doc-agent-backend/request"
	"doc-agent-backend/service/chat"
	"doc-agent-backend/utils"
	"log/slog"

	"github.com/gin-gonic/gin"
)

func Chat(c *gin.Context) {
	utils.SetSSEHeaders(c)

	var req request.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		utils.SendSSEMessage(c, utils.EventError, ErrParseRequest)
		utils.SendSSEMessage(c, utils.EventDone, "")
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// 监听客户端的取消信号
	go func() {
		<-c.Done()
		cancel()
	}()

	email := c.GetString("email")
	if err := chat.Stream(ctx, c, email, req); err != nil {
		slog.Error(ErrChat.Error(),
			"session_id", req.SessionID,
			"err", err,
		)
		utils.SendSSEMessage(c, utils.EventError, ErrChat)
		utils.SendSSEMessage(c, utils.EventDone, "")
		return
	}

	utils.SendSSEMessage(c, utils.EventDone, "")
}
