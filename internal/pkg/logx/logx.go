/*
Package logx wraps zerolog and exposes the application's structured logging helpers.

It owns the global logger: console output at debug level during development,
plain JSON at info level otherwise. Helper functions accept an optional list of
key-value fields appended to the log event.
*/
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger configures the process-wide zerolog instance.
// Development mode switches to the human-readable ConsoleWriter and enables debug logs.
func InitGlobalLogger(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if isDevelopment {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			NoColor:    false,
			TimeFormat: time.RFC3339,
		})
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger.With().Caller().Logger()
}

// Logger returns the global zerolog.Logger.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// pairs validates that fields arrive as key-value pairs. An odd count would make
// zerolog panic, so the fields are dropped with a warning instead.
func pairs(level string, fields []any) []any {
	if len(fields)%2 != 0 {
		Logger().Warn().
			Int("fields_count", len(fields)).
			Str("log_level", level).
			Msg("logx call received an odd number of fields; fields ignored")
		return nil
	}
	return fields
}

// Info logs a message at the Info level with optional key-value fields.
func Info(msg string, fields ...any) {
	Logger().Info().
		Fields(pairs("Info", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Warn logs a message at the Warn level with optional key-value fields.
func Warn(msg string, fields ...any) {
	Logger().Warn().
		Fields(pairs("Warn", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Error logs an error and message at the Error level with optional key-value fields.
func Error(err error, msg string, fields ...any) {
	Logger().Error().
		Err(err).
		Fields(pairs("Error", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}

// Fatal logs the error and terminates the process with exit code 1.
func Fatal(err error, msg string, fields ...any) {
	Logger().Fatal().
		Err(err).
		Fields(pairs("Fatal", fields)).
		CallerSkipFrame(1).
		Msg(msg)
}
