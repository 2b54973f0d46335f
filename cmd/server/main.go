package main

import (
	"doc-agent-backend/config"
	"doc-agent-backend/dao"
	"doc-agent-backend/router"
	"doc-agent-backend/service/knowledge-base/etl"
	"doc-agent-backend/service/mq"
	"doc-agent-backend/service/summarization"
	"flag"
	"log/slog"
	"os"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径，默认 config/config.yaml")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	if err := dao.Init(); err != nil {
		slog.Error("Failed to init database", "err", err)
		os.Exit(1)
	}

	if err := etl.Init(); err != nil {
		slog.Error("Failed to init ETL processors", "err", err)
		os.Exit(1)
	}

	if err := mq.Init(); err != nil {
		slog.Error("Failed to init MQ", "err", err)
		os.Exit(1)
	}
	if err := mq.Run(); err != nil {
		slog.Error("Failed to start MQ", "err", err)
		os.Exit(1)
	}
	defer mq.Shutdown()

	if err := summarization.Init(); err != nil {
		slog.Error("Failed to init summarizer", "err", err)
		os.Exit(1)
	}
	summarization.SummarizerInstance.Run()

	r := router.Register()
	addr := config.Cfg.Server.Host + ":" + config.Cfg.Server.Port
	if err := r.Run(addr); err != nil {
		slog.Error("Server exited", "err", err)
		os.Exit(1)
	}
}
