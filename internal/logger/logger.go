package logger

import (
	"fmt"
	"os"

	"archery-results/internal/config"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Logger()

	logger = logger.Level(zerolog.DebugLevel)

	return logger
}

// ApplyLevel sets the process-wide level from LOG_LEVEL once the config is
// loaded.
func ApplyLevel(logger zerolog.Logger, cfg *config.Config) error {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	logger.Debug().Str("level", level.String()).Msg("log level applied")
	return nil
}

var Module = fx.Provide(New)
