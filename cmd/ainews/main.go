package main

import (
	"github.com/nivcodes/ainews/cmd/handlers"
	"github.com/nivcodes/ainews/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
