package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

const DefaultMaxFileSize = 10 * 1024 * 1024

// 允许上传的MIME类型
var allowedMIMETypes = map[string]bool{
	"application/pdf":    true,
	"text/plain":         true,
	"text/markdown":      true,
	"text/csv":           true,
	"application/json":   true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-powerpoint":                                     true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
}

// 允许上传的扩展名，浏览器对旧版Office和CSV上报的MIME类型不可靠，扩展名作为兜底
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".md":   true,
	".json": true,
	".csv":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".ppt":  true,
	".pptx": true,
}

// ValidationResult 整批文件的校验结果，Errors中每个失败文件对应一条信息
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validator 在任何解析开始前校验文件类型和大小
type Validator struct {
	MaxFileSize int64
}

func NewValidator(maxFileSize int64) *Validator {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Validator{MaxFileSize: maxFileSize}
}

// Validate 校验整批文件，不修改输入。Valid为true当且仅当所有文件通过类型和大小检查
func (v *Validator) Validate(files []File) ValidationResult {
	var errs []string
	for _, f := range files {
		if !typeAllowed(f.MIMEType, f.Name) {
			errs = append(errs, fmt.Sprintf("%s: unsupported file type %q", f.Name, f.MIMEType))
			continue
		}
		if f.Size > v.MaxFileSize {
			errs = append(errs, fmt.Sprintf("%s: file size %d exceeds limit of %d bytes", f.Name, f.Size, v.MaxFileSize))
		}
	}

	return ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

func typeAllowed(mimeType, name string) bool {
	if allowedMIMETypes[mimeType] {
		return true
	}
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}
