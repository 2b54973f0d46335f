package response

// GetPolicyTokenResponse 前端直传文件至OSS的凭证
type GetPolicyTokenResponse struct {
	Policy           string `json:"policy"`
	SignatureVersion string `json:"x_oss_signature_version"`
	Credential       string `json:"x_oss_credential"`
	Date             string `json:"x_oss_date"`
	Signature        string `json:"signature"`
	Host             string `json:"host"`
	Dir              string `json:"dir"`
}

type MetadataResponse struct {
	FileName       string `json:"file_name"`
	FileType       string `json:"file_type"`
	FileSize       int64  `json:"file_size"`
	SessionID      string `json:"session_id,omitempty"`
	ContentPreview string `json:"content_preview"`
	Status         string `json:"status"`
}

type GetDocumentMetadataResponse struct {
	Metadata []MetadataResponse `json:"metadata"`
}

type SearchDocumentMetadataResponse struct {
	Metadata []MetadataResponse `json:"metadata"`
}

type GetPreSignedURLResponse struct {
	URL string `json:"url"`
}

// ParsedFileResponse 单个文件的提取结果
// Text与旧契约保持兼容：提取失败时内嵌占位错误串，Error字段提供结构化信息
type ParsedFileResponse struct {
	FileName       string `json:"file_name"`
	Text           string `json:"text"`
	Error          string `json:"error,omitempty"`
	ContentPreview string `json:"content_preview"`
	ObjectName     string `json:"object_name,omitempty"`
}

type ParseDocumentsResponse struct {
	Files []ParsedFileResponse `json:"files"`

	// 与输入文件顺序一致的提取文本列表
	FileContents []string `json:"file_contents"`
}

type ValidateFilesResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}
