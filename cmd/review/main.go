package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// BootstrapName 服务标识。
const BootstrapName = "tradereview"

func main() {
	// .env 缺失时忽略，环境变量仍然生效
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("command failed", "service", BootstrapName, "error", err)
		os.Exit(1)
	}
}
