package commands

import (
	"log/slog"
	"os"

	"github.com/hubtty/hubtty/internal/config"
	"github.com/hubtty/hubtty/internal/logging"
)

// attachServerLog adds a JSON handler writing to the resolved server's
// log-file alongside the current default handler. A file that cannot be
// opened is reported but not fatal; the terminal handler keeps working.
func attachServerLog(cfg *config.Config) {
	if cfg.Server.LogFile == "" {
		return
	}
	f, err := os.OpenFile(cfg.Server.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		slog.Warn("cannot open server log file", "path", cfg.Server.LogFile, "error", err)
		return
	}

	level := logging.LevelFromVerbosity(verbosity)
	fileHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(logging.NewMultiHandler(slog.Default().Handler(), fileHandler)))
}
