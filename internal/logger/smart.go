package logger

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// smartHook duplicates error entries into a separate file
type smartHook struct {
	out       io.Writer
	formatter log.Formatter
}

func newSmartHook(dir string) (*smartHook, error) {
	f, err := openLogFile(dir, smartLogFile)
	if err != nil {
		return nil, err
	}
	return &smartHook{
		out:       f,
		formatter: &log.JSONFormatter{},
	}, nil
}

// Levels implements the log.Hook interface
func (*smartHook) Levels() []log.Level {
	return []log.Level{
		log.PanicLevel,
		log.FatalLevel,
		log.ErrorLevel,
	}
}

// Fire implements the log.Hook interface
func (h *smartHook) Fire(entry *log.Entry) error {
	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.out.Write(data)
	return err
}
