package main

import (
	"github.com/btcprivate/btcptx/infrastructure/logger"
	"github.com/pkg/errors"
)

var log = logger.RegisterSubSystem("TXSG")

func initLog(cfg *configFlags) error {
	level, ok := logger.LevelFromString(cfg.LogLevel)
	if !ok {
		return errors.Errorf("the specified log level [%s] is invalid", cfg.LogLevel)
	}
	return logger.InitLog(cfg.logFile(), level)
}
