package main

import (
	"github.com/citenav/backend/internal/server"
	"github.com/citenav/backend/internal/util"
	"github.com/citenav/backend/pkg/logger"
	"github.com/citenav/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
