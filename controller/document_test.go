package controller

import (
	"bytes"
	"doc-agent-backend/config"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParseRequest(t *testing.T, fileName string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("files", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/documents/parse", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// 超限文件必须在读取内容之前被multipart头上的大小校验拦下
func TestParseDocuments_OversizedFileRejectedByHeaderCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Cfg = &config.Config{
		Upload: config.UploadConfig{MaxFileSize: 16, PreviewLength: 500},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newParseRequest(t, "big.txt", []byte(strings.Repeat("x", 64)))
	c.Set("email", "user@example.com")

	ParseDocuments(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrInvalidFiles.Error())
	assert.Contains(t, w.Body.String(), "exceeds limit")
}

func TestValidateDocuments_UnsupportedType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.Cfg = &config.Config{
		Upload: config.UploadConfig{MaxFileSize: 1024, PreviewLength: 500},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = newParseRequest(t, "archive.zip", []byte("not really a zip"))

	ValidateDocuments(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":false`)
	assert.Contains(t, w.Body.String(), "unsupported file type")
}
