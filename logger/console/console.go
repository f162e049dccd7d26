package console

import (
	"os"

	"github.com/charmbracelet/log"
)

// ConsoleLogger 基于 charmbracelet/log 的控制台日志后端
type ConsoleLogger struct {
	logger *log.Logger
}

// ConsoleLoggerParams 控制台日志配置
type ConsoleLoggerParams struct {
	Debug bool
}

// NewConsoleLogger 创建一个写到 stderr 的控制台日志后端
func NewConsoleLogger(params ConsoleLoggerParams) *ConsoleLogger {
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return &ConsoleLogger{
		logger: logger,
	}
}

// Log 以默认级别写一条日志
func (c *ConsoleLogger) Log(message string, keyvals ...any) {
	c.logger.Print(message, keyvals...)
}

// Debug 以 DEBUG 级别写一条日志
func (c *ConsoleLogger) Debug(message string, keyvals ...any) {
	c.logger.Debug(message, keyvals...)
}

// Info 以 INFO 级别写一条日志
func (c *ConsoleLogger) Info(message string, keyvals ...any) {
	c.logger.Info(message, keyvals...)
}

// Warn 以 WARN 级别写一条日志
func (c *ConsoleLogger) Warn(message string, keyvals ...any) {
	c.logger.Warn(message, keyvals...)
}

// Error 以 ERROR 级别写一条日志
func (c *ConsoleLogger) Error(message string, keyvals ...any) {
	c.logger.Error(message, keyvals...)
}

// Fatal 以 FATAL 级别写一条日志并终止程序
func (c *ConsoleLogger) Fatal(message string, keyvals ...any) {
	c.logger.Fatal(message, keyvals...)
}
