package log

import (
	"fmt"
	"io"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/natefinch/lumberjack.v2"
)

// MultiWriter fans log output out to every registered writer. Unlike
// io.MultiWriter it keeps writing to the remaining writers when one fails.
type MultiWriter struct {
	writers []io.Writer
}

func NewMultiWriter() *MultiWriter {
	return &MultiWriter{writers: make([]io.Writer, 0)}
}

func (m *MultiWriter) Write(p []byte) (n int, err error) {
	for _, w := range m.writers {
		if _, e := w.Write(p); e != nil {
			err = e
		}
	}
	return len(p), err
}

func (m *MultiWriter) Add(writer io.Writer) *MultiWriter {
	m.writers = append(m.writers, writer)
	return m
}

// FileAppenderOpt configures the rotating file appender.
type FileAppenderOpt struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// AddFileAppender adds a lumberjack-backed rotating file writer. Options
// arrive as a loosely typed map from the config layer and are decoded here.
func (m *MultiWriter) AddFileAppender(options map[string]interface{}) (*MultiWriter, error) {
	var opt FileAppenderOpt
	if err := mapstructure.Decode(options, &opt); err != nil {
		return m, fmt.Errorf("decode file appender options: %w", err)
	}
	if opt.Filename == "" {
		return m, fmt.Errorf("file appender requires a filename")
	}
	m.writers = append(m.writers, &lumberjack.Logger{
		Filename:   opt.Filename,
		MaxSize:    opt.MaxSize,    // megabytes
		MaxBackups: opt.MaxBackups, // number of backups
		MaxAge:     opt.MaxAge,     // days
		Compress:   opt.Compress,
	})
	return m, nil
}
