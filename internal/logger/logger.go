// Package logger sets up the internal and access logging of sidekick
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pa11y/sidekick/cmd/sidekick/config"
)

const (
	internalLogFile = "sidekick.log"
	accessLogFile   = "access.log"
	smartLogFile    = "errors.log"
)

// Init initializes the logger from the loaded config
func Init() {
	c := config.Get().Logging
	out, err := logWriter(c.Internal.LoggerConf, internalLogFile)
	if err != nil {
		log.WithError(err).Fatal("could not open internal log file")
	}
	log.SetOutput(out)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	SetLevel(c.Internal.Level)
	if c.Internal.Smart.Enabled {
		hook, err := newSmartHook(c.Internal.Smart.Dir)
		if err != nil {
			log.WithError(err).Fatal("could not open smart log file")
		}
		log.AddHook(hook)
	}
}

// SetLevel sets the log level; an unknown level falls back to INFO
func SetLevel(level string) {
	l, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		l = log.InfoLevel
	}
	log.SetLevel(l)
}

// AccessLogWriter returns the writer for the http access log as configured
func AccessLogWriter() io.Writer {
	w, err := logWriter(config.Get().Logging.Access, accessLogFile)
	if err != nil {
		log.WithError(err).Fatal("could not open access log file")
	}
	return w
}

func logWriter(c config.LoggerConf, filename string) (io.Writer, error) {
	if c.Dir == "" {
		return os.Stderr, nil
	}
	f, err := openLogFile(c.Dir, filename)
	if err != nil {
		return nil, err
	}
	if c.StdErr {
		return io.MultiWriter(f, os.Stderr), nil
	}
	return f, nil
}

func openLogFile(dir, filename string) (*os.File, error) {
	return os.OpenFile(filepath.Join(dir, filename), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
}
