package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Extractor 单一文件格式的文本提取器
type Extractor interface {
	// Name 提取器名称，用于日志
	Name() string

	// MIMETypes 该提取器精确匹配的MIME类型
	MIMETypes() []string

	// Extensions 该提取器匹配的扩展名（包含.，小写）
	Extensions() []string

	// Extract 将文件字节流解析为纯文本
	Extract(ctx context.Context, data []byte) (string, error)
}

type extensionBinding struct {
	ext       string
	extractor Extractor
}

// Registry 提取器注册表
// 路由优先级：先按声明的MIME类型精确匹配，未命中时按扩展名顺序匹配。
// 浏览器对旧版Office和CSV上报的MIME类型在不同平台上不可靠，扩展名兜底不可省略。
type Registry struct {
	byMIME map[string]Extractor

	// 保持注册顺序，扩展名匹配按序进行
	byExtension []extensionBinding
}

func NewRegistry() *Registry {
	return &Registry{
		byMIME: make(map[string]Extractor),
	}
}

func (r *Registry) Register(e Extractor) {
	for _, mimeType := range e.MIMETypes() {
		r.byMIME[mimeType] = e
	}
	for _, ext := range e.Extensions() {
		r.byExtension = append(r.byExtension, extensionBinding{ext: ext, extractor: e})
	}
}

// Resolve 为单个文件选择提取器，两轮匹配均未命中返回ErrUnsupportedFormat
func (r *Registry) Resolve(mimeType, name string) (Extractor, error) {
	if e, ok := r.byMIME[mimeType]; ok {
		return e, nil
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, binding := range r.byExtension {
		if binding.ext == ext {
			return binding.extractor, nil
		}
	}

	return nil, fmt.Errorf("%w: %s (declared type %q)", ErrUnsupportedFormat, name, mimeType)
}

// DefaultRegistry 注册全部内置提取器
// PowerPoint 允许上传但没有提取器，路由会以 ErrUnsupportedFormat 失败
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&PDFExtractor{})
	r.Register(&WordExtractor{})
	r.Register(&ExcelExtractor{})
	r.Register(&CSVExtractor{})
	r.Register(&TextExtractor{})
	return r
}
