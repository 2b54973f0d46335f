package ingest

import (
	"fmt"
	"path"
	"regexp"
	"time"
)

var unsafeFileNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFileName 将文件名限制在安全字符集内，并剥离路径部分
func SanitizeFileName(name string) string {
	name = path.Base(name)
	name = unsafeFileNameChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." || name == "/" {
		return "file"
	}
	return name
}

// ObjectName 生成文件在OSS上的存储路径
// 知识库文件：{email}/knowledge-base/{timestamp}_{name}
// 会话文件：{email}/sessions/{sessionID}/{timestamp}_{name}
// 毫秒时间戳保证同一用户并发上传同名文件时路径不冲突。
func ObjectName(userEmail, sessionID, fileName string) string {
	name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), SanitizeFileName(fileName))
	if sessionID == "" {
		return fmt.Sprintf("%s/knowledge-base/%s", userEmail, name)
	}
	return fmt.Sprintf("%s/sessions/%s/%s", userEmail, sessionID, name)
}
