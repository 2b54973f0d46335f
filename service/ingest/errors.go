package ingest

import "errors"

var (
	// ErrUnsupportedFormat MIME类型和扩展名均未匹配到提取器
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrMalformedDocument 底层解码器无法解析文件字节流
	ErrMalformedDocument = errors.New("malformed document")

	// ErrImageOnlyDocument PDF所有页面均无可提取文本，通常为扫描件，需要OCR
	ErrImageOnlyDocument = errors.New("document contains no extractable text (scanned or image-only, OCR required)")

	// ErrNoExtractableText 提取流程正常结束但结果为空
	ErrNoExtractableText = errors.New("no extractable text")

	// ErrExtractionStalled 解码器在时限内未返回，文件按解析失败处理
	ErrExtractionStalled = errors.New("extraction timed out")
)
