package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AppName is used for the state directory and log file name
const AppName = "pbxpatch"

// levels maps -v counts to log levels; anything above the last entry is trace
var levels = []zerolog.Level{zerolog.WarnLevel, zerolog.InfoLevel, zerolog.DebugLevel}

// LevelFor returns the log level for a -v count
func LevelFor(verbosity int) zerolog.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(levels) {
		return zerolog.TraceLevel
	}
	return levels[verbosity]
}

// SetupLogger sends logs to stderr and to the log file in the XDG state
// directory. At -vv and above records carry the caller.
func SetupLogger(verbosity int) {
	zerolog.SetGlobalLevel(LevelFor(verbosity))

	writers := []io.Writer{consoleWriter(os.Stderr)}
	logFile := LogFilePath()
	f, fileErr := openLogFile(logFile)
	if fileErr == nil {
		writers = append(writers, f)
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Log file unavailable, logging to stderr only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

func consoleWriter(f *os.File) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        f,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()),
	}
}

// LogFilePath returns $XDG_STATE_HOME/pbxpatch/pbxpatch.log
func LogFilePath() string {
	return filepath.Join(xdg.StateHome, AppName, AppName+".log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// GetLogger returns a logger tagged with component
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// LogCommand logs a command execution with its arguments
func LogCommand(cmd string, args []string) {
	log.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}

// Run tracks one pass of an operation over a manifest
type Run struct {
	logger zerolog.Logger
	start  time.Time
}

// StartRun logs the start of op on manifest and returns a Run whose logger
// carries the operation and manifest on every record
func StartRun(logger zerolog.Logger, op, manifest string, files int) *Run {
	l := logger.With().Str("run", op).Str("manifest", manifest).Logger()
	l.Debug().Int("files", files).Msg("Run started")
	return &Run{logger: l, start: time.Now()}
}

// Logger returns the run scoped logger
func (r *Run) Logger() zerolog.Logger {
	return r.logger
}

// Finish logs the end of the run with its duration and error, if any
func (r *Run) Finish(err error) {
	ev := r.logger.Debug().Dur("duration", time.Since(r.start))
	if err != nil {
		ev.Err(err).Msg("Run failed")
		return
	}
	ev.Msg("Run finished")
}
