// Package log writes reel's diagnostic log. Entries go to a daily file under where.Logs()
// and are dropped entirely unless logs.write is enabled.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/reel-cli/reel/filesystem"
	"github.com/reel-cli/reel/key"
	"github.com/reel-cli/reel/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	logger  = newDiscard()
	enabled bool
)

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Path returns the file the log is written to on the given day.
func Path(day time.Time) string {
	return filepath.Join(where.Logs(), day.Format("2006-01-02")+".log")
}

// Setup configures the logger from viper. When logs.write is off every call is a no-op.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		logger = newDiscard()
		return nil
	}

	f, err := filesystem.API().OpenFile(Path(time.Now()), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		enabled = false
		return fmt.Errorf("open log file: %w", err)
	}

	l := logrus.New()
	l.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	logger = l
	return nil
}

// Enabled reports whether entries are being written.
func Enabled() bool {
	return enabled
}

func Error(args ...any) {
	if enabled {
		logger.Error(args...)
	}
}

func Errorf(format string, args ...any) {
	if enabled {
		logger.Errorf(format, args...)
	}
}

func Warn(args ...any) {
	if enabled {
		logger.Warn(args...)
	}
}

func Warnf(format string, args ...any) {
	if enabled {
		logger.Warnf(format, args...)
	}
}

func Info(args ...any) {
	if enabled {
		logger.Info(args...)
	}
}

func Infof(format string, args ...any) {
	if enabled {
		logger.Infof(format, args...)
	}
}

func Debug(args ...any) {
	if enabled {
		logger.Debug(args...)
	}
}

func Debugf(format string, args ...any) {
	if enabled {
		logger.Debugf(format, args...)
	}
}

// Tracef is used for per-frame engine chatter.
func Tracef(format string, args ...any) {
	if enabled {
		logger.Tracef(format, args...)
	}
}
