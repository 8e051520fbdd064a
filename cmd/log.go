package cmd

import (
	"io"
	"log/slog"
)

// newLogger 创建写入 stderr 的文本日志器。
func newLogger(writer io.Writer, level string) *slog.Logger {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		slogLevel = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: slogLevel}))
}
