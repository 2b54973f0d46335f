package knowledgebase

import (
	"crypto/hmac"
	"doc-agent-backend/config"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePolicyToken(t *testing.T) {
	config.Cfg = &config.Config{
		OSS: config.OSSConfig{
			Region:          "cn-hangzhou",
			BucketName:      "doc-agent",
			AccessKeyID:     "test-ak",
			AccessKeySecret: "test-sk",
		},
	}

	token, err := GeneratePolicyToken("alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, "OSS4-HMAC-SHA256", token.SignatureVersion)
	assert.Equal(t, "alice@example.com/", token.Dir)
	assert.Equal(t, "https://doc-agent.oss-cn-hangzhou.aliyuncs.com", token.Host)

	// credential: AK/日期/区域/oss/aliyun_v4_request
	parts := strings.Split(token.Credential, "/")
	require.Len(t, parts, 5)
	assert.Equal(t, "test-ak", parts[0])
	assert.Equal(t, "cn-hangzhou", parts[2])
	assert.Equal(t, "oss", parts[3])
	assert.Equal(t, "aliyun_v4_request", parts[4])

	// policy必须是合法JSON，且把上传限制在用户目录下
	policyJSON, err := base64.StdEncoding.DecodeString(token.Policy)
	require.NoError(t, err)

	var policy struct {
		Expiration string `json:"expiration"`
		Conditions []any  `json:"conditions"`
	}
	require.NoError(t, json.Unmarshal(policyJSON, &policy))
	assert.NotEmpty(t, policy.Expiration)
	assert.Contains(t, string(policyJSON), `"starts-with","$key","alice@example.com/"`)
	assert.Contains(t, string(policyJSON), `"bucket":"doc-agent"`)

	// 签名可以用相同的密钥派生链复现
	signingKey := hmacSHA256([]byte("aliyun_v4"+"test-sk"), []byte(parts[1]))
	signingKey = hmacSHA256(signingKey, []byte("cn-hangzhou"))
	signingKey = hmacSHA256(signingKey, []byte("oss"))
	signingKey = hmacSHA256(signingKey, []byte("aliyun_v4_request"))
	want := hex.EncodeToString(hmacSHA256(signingKey, []byte(token.Policy)))
	assert.True(t, hmac.Equal([]byte(want), []byte(token.Signature)))
}
