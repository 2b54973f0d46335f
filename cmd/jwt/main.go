package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
)

// 生成随机JWT签名密钥，输出填入配置文件的 jwt.secret_key
func main() {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		fmt.Fprintln(os.Stderr, "failed to generate jwt secret:", err)
		os.Exit(1)
	}

	fmt.Println(base64.URLEncoding.EncodeToString(key))
}
