package middleware

import (
	"log/slog"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/config"
)

// WithDebugArgsPrint logs the command and its arguments in debug mode
func WithDebugArgsPrint() command.Middleware {
	return command.Before(func(cmd command.Command, ctx *command.Context) error {
		if config.IsDev {
			slog.Debug("run command", slog.String("cmd", cmd.Name()), slog.Any("args", ctx.Args))
		}
		return nil
	})
}
