package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "config/config.yaml"

// Cfg 全局配置实例，服务启动时通过 Load 初始化
var Cfg *Config

type Config struct {
	Server ServerConfig `yaml:"server"`
	MySQL  MySQLConfig  `yaml:"mysql"`
	JWT    JWTConfig    `yaml:"jwt"`
	OSS    OSSConfig    `yaml:"oss"`
	MQ     MQConfig     `yaml:"mq"`
	Milvus MilvusConfig `yaml:"milvus"`
	Model  ModelConfig  `yaml:"model"`
	RAG    RAGConfig    `yaml:"rag"`
	ASR    ASRConfig    `yaml:"asr"`
	Upload UploadConfig `yaml:"upload"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type JWTConfig struct {
	SecretKey string `yaml:"secret_key"`
}

type OSSConfig struct {
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket_name"`
	AccessKeyID     string `yaml:"access_key_id"`
	AccessKeySecret string `yaml:"access_key_secret"`
}

type MQConfig struct {
	NameServer []string `yaml:"name_server"`
}

type MilvusConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
}

type ModelConfig struct {
	APIKey string `yaml:"api_key"`

	// OpenAI兼容接口地址
	BaseURL string `yaml:"base_url"`
}

// RAGConfig 外部RAG检索问答服务
type RAGConfig struct {
	Endpoint string `yaml:"endpoint"`

	// 请求超时时间（秒）
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

type ASRConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
}

// UploadConfig 文件上传限制
type UploadConfig struct {
	// 单文件大小上限（字节）
	MaxFileSize int64 `yaml:"max_file_size"`

	// 文件内容预览长度（字符数）
	PreviewLength int `yaml:"preview_length"`
}

const (
	DefaultMaxFileSize   = 10 * 1024 * 1024
	DefaultPreviewLength = 500
	defaultRAGTimeout    = 120

	defaultModelBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
)

func Load(path string) error {
	if path == "" {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %v", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %v", err)
	}

	if cfg.Upload.MaxFileSize <= 0 {
		cfg.Upload.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Upload.PreviewLength <= 0 {
		cfg.Upload.PreviewLength = DefaultPreviewLength
	}
	if cfg.RAG.TimeoutSeconds <= 0 {
		cfg.RAG.TimeoutSeconds = defaultRAGTimeout
	}
	if cfg.Model.BaseURL == "" {
		cfg.Model.BaseURL = defaultModelBaseURL
	}

	Cfg = cfg
	return nil
}
