package model

import "time"

type FileType string

const (
	FileTypePDF         FileType = "pdf"
	FileTypeMarkdown    FileType = "md"
	FileTypeText        FileType = "txt"
	FileTypeJSON        FileType = "json"
	FileTypeCSV         FileType = "csv"
	FileTypeWord        FileType = "docx"
	FileTypeWordLegacy  FileType = "doc"
	FileTypeExcel       FileType = "xlsx"
	FileTypeExcelLegacy FileType = "xls"

	// PowerPoint 允许上传，但暂无文本提取能力
	FileTypePPT  FileType = "ppt"
	FileTypePPTX FileType = "pptx"
)

type Status string

const (
	// 文件上传完成
	StatusUploaded Status = "UPLOADED"

	// 文件向量化处理完成
	StatusProcessed Status = "PROCESSED"

	// 文件向量化处理失败
	StatusProcessedFailed Status = "PROCESSED_FAILED"
)

// DocumentMetadata 存储上传文档的元数据
// 建立联合索引 (user_email, created_at)，在 file_name 上建立全文索引
type DocumentMetadata struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"not null;index:idx_email_created" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
	UserEmail string    `gorm:"not null;index:idx_email_created" json:"user_email"`
	FileName  string    `gorm:"not null;index:idx_fulltext_file_name,class:FULLTEXT,option:WITH PARSER ngram" json:"file_name"`
	FileType  FileType  `gorm:"not null" json:"file_type"`
	FileSize  int64     `gorm:"not null" json:"file_size"`

	// 文件所属会话。为空表示文件属于用户知识库，跨会话可见
	SessionID string `gorm:"index" json:"session_id"`

	// 提取文本的预览片段
	ContentPreview string `gorm:"type:text" json:"content_preview"`

	// 文件在OSS上的完整路径，不包含bucket名称
	ObjectName string `gorm:"not null" json:"object_name"`

	// 文件处理状态
	Status Status `gorm:"not null;default:UPLOADED" json:"status"`
}

func (DocumentMetadata) TableName() string {
	return "document_metadata"
}
