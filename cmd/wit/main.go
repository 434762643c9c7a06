package main

import (
	"log/slog"
	"os"

	"github.com/keshon/wit/internal/command"
	"github.com/keshon/wit/internal/config"

	_ "github.com/keshon/wit/internal/command/add"
	_ "github.com/keshon/wit/internal/command/branch"
	_ "github.com/keshon/wit/internal/command/checkout"
	_ "github.com/keshon/wit/internal/command/commit"
	_ "github.com/keshon/wit/internal/command/diff"
	_ "github.com/keshon/wit/internal/command/graph"
	_ "github.com/keshon/wit/internal/command/help"
	_ "github.com/keshon/wit/internal/command/init"
	_ "github.com/keshon/wit/internal/command/log"
	_ "github.com/keshon/wit/internal/command/merge"
	_ "github.com/keshon/wit/internal/command/status"
	_ "github.com/keshon/wit/internal/command/verify"
)

func main() {
	level := slog.LevelInfo
	if config.IsDev {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	command.RunCLI(os.Args[1:])
}
