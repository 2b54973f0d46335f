package controller

import (
	"context"
	"doc-agent-backend/config"
	"doc-agent-backend/dao"
	"doc-agent-backend/model"
	"doc-agent-backend/request"
	"doc-agent-backend/response"
	"doc-agent-backend/service/ingest"
	knowledgebase "doc-agent-backend/service/knowledge-base"
	"doc-agent-backend/service/knowledge-base/etl"
	"doc-agent-backend/service/mq"
	"doc-agent-backend/service/storage"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseDocuments 接收multipart文件集合，校验后逐个提取文本。
// 提取成功的文件上传至OSS并保存元数据，单个文件失败不影响其他文件，
// 失败文件在返回的文本列表中以占位错误串表示
func ParseDocuments(c *gin.Context) {
	email := c.GetString("email")
	sessionID := c.PostForm("session_id")

	form, err := c.MultipartForm()
	if err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	// 类型和大小都能从multipart头拿到，校验通过后才读取文件内容，
	// 避免超限文件先被整体读入内存
	validator := ingest.NewValidator(config.Cfg.Upload.MaxFileSize)
	if result := validator.Validate(headerFiles(fileHeaders)); !result.Valid {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrInvalidFiles.Error(),
			Data: response.ValidateFilesResponse{
				Valid:  false,
				Errors: result.Errors,
			},
		})
		return
	}

	files, err := readMultipartFiles(fileHeaders)
	if err != nil {
		slog.Error(ErrReadFile.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrReadFile.Error(),
		})
		return
	}

	results := ingest.ExtractBatch(c.Request.Context(), ingest.DefaultRegistry(), files)

	resp := response.ParseDocumentsResponse{
		FileContents: ingest.Texts(results),
	}
	for i, res := range results {
		fileResp := response.ParsedFileResponse{FileName: res.Name}
		if res.Err != nil {
			fileResp.Text = res.Sentinel()
			fileResp.Error = res.Err.Error()
			resp.Files = append(resp.Files, fileResp)
			continue
		}

		fileResp.Text = res.Text
		fileResp.ContentPreview = ingest.Preview(res.Text, config.Cfg.Upload.PreviewLength)

		objectName := ingest.ObjectName(email, sessionID, res.Name)
		if err := persistParsedDocument(c.Request.Context(), email, sessionID, objectName, files[i], fileResp.ContentPreview); err != nil {
			// 存档失败不影响返回已提取的文本
			slog.Error("Failed to persist parsed document",
				"file_name", res.Name,
				"err", err,
			)
		} else {
			fileResp.ObjectName = objectName
		}

		resp.Files = append(resp.Files, fileResp)
	}

	c.JSON(http.StatusOK, response.Response{
		Data: resp,
	})
}

// ValidateDocuments 仅校验文件类型与大小，不做文本提取
func ValidateDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	validator := ingest.NewValidator(config.Cfg.Upload.MaxFileSize)
	result := validator.Validate(headerFiles(form.File["files"]))

	c.JSON(http.StatusOK, response.Response{
		Data: response.ValidateFilesResponse{
			Valid:  result.Valid,
			Errors: result.Errors,
		},
	})
}

// headerFiles 仅由multipart头构造文件描述，不读取文件内容
func headerFiles(fileHeaders []*multipart.FileHeader) []ingest.File {
	files := make([]ingest.File, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		files = append(files, ingest.File{
			Name:     fh.Filename,
			MIMEType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
		})
	}
	return files
}

func readMultipartFiles(fileHeaders []*multipart.FileHeader) ([]ingest.File, error) {
	files := make([]ingest.File, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}

		files = append(files, ingest.File{
			Name:     fh.Filename,
			MIMEType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Data:     data,
		})
	}
	return files, nil
}

func persistParsedDocument(ctx context.Context, email, sessionID, objectName string, f ingest.File, preview string) error {
	if err := storage.PutObject(ctx, objectName, f.Data); err != nil {
		return err
	}

	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Name)), ".")
	metadata := &model.DocumentMetadata{
		UserEmail:      email,
		SessionID:      sessionID,
		FileName:       f.Name,
		FileType:       model.FileType(fileType),
		FileSize:       f.Size,
		ContentPreview: preview,
		ObjectName:     objectName,
		Status:         model.StatusUploaded,
	}
	if err := dao.SaveDocumentMetadata(metadata); err != nil {
		return err
	}

	// 知识库文件（不属于会话）继续走向量化流程
	if sessionID == "" {
		return mq.SendMessage(ctx, &mq.Message{
			Topic: mq.TopicKnowledgeBase,
			Tag:   mq.TagETL,
			Payload: etl.ETLMessage{
				FileType:   metadata.FileType,
				ObjectName: objectName,
			},
		})
	}
	return nil
}

func GetPolicyToken(c *gin.Context) {
	email := c.GetString("email")
	policyToken, err := knowledgebase.GeneratePolicyToken(email)
	if err != nil {
		slog.Error(ErrGeneratePolicyToken.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGeneratePolicyToken.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: policyToken,
	})
}

func GetDocumentMetadata(c *gin.Context) {
	email := c.GetString("email")
	sessionID := c.Query("session-id")

	var metadata []model.DocumentMetadata
	var err error
	if sessionID != "" {
		metadata, err = dao.GetDocumentMetadataBySession(email, sessionID)
	} else {
		metadata, err = dao.GetDocumentMetadataByEmail(email)
	}
	if err != nil {
		slog.Error(ErrGetDocumentMetadata.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetDocumentMetadata.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: response.GetDocumentMetadataResponse{
			Metadata: toMetadataResponses(metadata),
		},
	})
}

// UploadDocumentMetadata 在前端将文件成功直传至OSS后调用，
// 存储文件元数据并向MQ发送向量化任务
func UploadDocumentMetadata(c *gin.Context) {
	var req request.UploadDocumentMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error(ErrParseRequest.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	email := c.GetString("email")
	if _, err := knowledgebase.UploadDocumentMetadata(c.Request.Context(), email, req); err != nil {
		slog.Error(ErrUploadDocumentMetadata.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrUploadDocumentMetadata.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

// DeleteDocument 删除OSS文件与元数据，向MQ发送向量清理任务
func DeleteDocument(c *gin.Context) {
	objectName := c.Query("object-name")
	if objectName == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, response.Response{
			Msg: ErrParseRequest.Error(),
		})
		return
	}

	email := c.GetString("email")
	if !strings.HasPrefix(objectName, email+"/") {
		c.AbortWithStatusJSON(http.StatusForbidden, response.Response{
			Msg: ErrDeleteDocument.Error(),
		})
		return
	}

	if err := knowledgebase.DeleteDocument(c.Request.Context(), objectName); err != nil {
		slog.Error(ErrDeleteDocument.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrDeleteDocument.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{})
}

func GetPresignedURL(c *gin.Context) {
	objectName := c.Query("object-name")
	email := c.GetString("email")
	if !strings.HasPrefix(objectName, email+"/") {
		c.AbortWithStatusJSON(http.StatusForbidden, response.Response{
			Msg: ErrGetPreSignedURL.Error(),
		})
		return
	}

	url, err := storage.GeneratePresignedURL(c.Request.Context(), objectName)
	if err != nil {
		slog.Error(ErrGetPreSignedURL.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrGetPreSignedURL.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: response.GetPreSignedURLResponse{
			URL: url,
		},
	})
}

func SearchDocumentMetadata(c *gin.Context) {
	email := c.GetString("email")
	keyword := c.Query("keyword")

	metadata, err := dao.SearchDocumentMetadataByFileName(email, keyword)
	if err != nil {
		slog.Error(ErrSearchDocumentMetadata.Error(), "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.Response{
			Msg: ErrSearchDocumentMetadata.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: response.SearchDocumentMetadataResponse{
			Metadata: toMetadataResponses(metadata),
		},
	})
}

func toMetadataResponses(metadata []model.DocumentMetadata) []response.MetadataResponse {
	resp := make([]response.MetadataResponse, 0, len(metadata))
	for _, item := range metadata {
		resp = append(resp, response.MetadataResponse{
			FileName:       item.FileName,
			FileType:       string(item.FileType),
			FileSize:       item.FileSize,
			SessionID:      item.SessionID,
			ContentPreview: item.ContentPreview,
			Status:         string(item.Status),
		})
	}
	return resp
}
