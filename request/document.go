package request

// UploadDocumentMetadataRequest 在前端将文件成功直传至OSS后调用
type UploadDocumentMetadataRequest struct {
	FileName   string `json:"file_name" binding:"required"`
	FileType   string `json:"file_type" binding:"required"`
	FileSize   int64  `json:"file_size" binding:"required"`
	ObjectName string `json:"object_name" binding:"required"`
	SessionID  string `json:"session_id"`
}
