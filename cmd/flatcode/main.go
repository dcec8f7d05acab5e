package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tyemirov/flatcode/internal/cli"
	"github.com/tyemirov/flatcode/internal/utils"
)

const (
	logLevelEnvironmentVariable = "FLATCODE_LOG_LEVEL"
	interruptedExitCode         = 130
)

// main is the entry point for the flatcode command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLoggerWithLevel(logLevel())
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(loggerInstance); applicationExecutionError != nil {
		if cli.IsInterrupted(applicationExecutionError) {
			_ = loggerInstance.Sync()
			os.Exit(interruptedExitCode)
		}
		loggerInstance.Fatal(utils.ApplicationExecutionFailedMessage, zap.Error(applicationExecutionError))
	}
}

// logLevel reads the minimum log level from the environment, defaulting to info.
func logLevel() zapcore.Level {
	level, parseError := zapcore.ParseLevel(os.Getenv(logLevelEnvironmentVariable))
	if parseError != nil {
		return zapcore.InfoLevel
	}
	return level
}
