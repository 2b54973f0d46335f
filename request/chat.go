package request

// ChatRequest FileContents为本轮对话附带的文档提取文本，
// IndexUser为true时RAG服务会同时检索该用户知识库中已索引的文档
type ChatRequest struct {
	SessionID    string   `json:"session_id" binding:"required"`
	Query        string   `json:"query" binding:"required"`
	FileContents []string `json:"file_contents"`
	IndexUser    bool     `json:"index_user"`
}
