package main

import (
	"micelio/config"
	"micelio/di"
	"micelio/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	server, cleanup := di.InitializeService()
	server.OnShutdown(cleanup)
	server.Serve()
}
