package controller

import (
	"doc-agent-backend/response"
	voicerecognition "doc-agent-backend/service/voice-recognition"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChatVoiceRecognition 接收语音文件，返回识别出的文本
func ChatVoiceRecognition(c *gin.Context) {
	audioFile, err := c.FormFile("audio")
	if err != nil {
		slog.Error(ErrGetAudioFile.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrGetAudioFile.Error(),
		})
		return
	}

	text, err := voicerecognition.Transcribe(audioFile)
	if err != nil {
		slog.Error(ErrVoiceRecognition.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrVoiceRecognition.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: text,
	})
}
