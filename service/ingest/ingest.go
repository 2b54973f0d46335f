// Package ingest 将上传的多格式文档解析为纯文本，供RAG问答和知识库索引使用
package ingest

// File 一次上传交互中的内存文件
type File struct {
	Name string

	// 客户端声明的MIME类型，可能为空或不可靠
	MIMEType string

	Size int64
	Data []byte
}
