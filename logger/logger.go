package logger

import (
	"os"

	"go.uber.org/zap"
)

// Log is a no-op until Init is called, so library code and tests can log
// without wiring the real logger.
var Log = zap.NewNop().Sugar()

func Init() {
	var (
		logger *zap.Logger
		err    error
	)
	if os.Getenv("LOG_DEV") == "1" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to initialize zap logger: " + err.Error())
	}
	Log = logger.Sugar()
}
