package ingest

const (
	DefaultPreviewLength = 500

	previewEllipsis = "..."
)

// Preview 截取提取文本的前缀作为预览
// 长度不超过maxLength时原样返回，超过时截断并追加省略号。
func Preview(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultPreviewLength
	}

	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + previewEllipsis
}
