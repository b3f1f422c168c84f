package common

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
)

type Log struct {
	logger lumberjack.Logger
}

const (
	timestampFormat        = "2006-01-02 15:04:05.000"
	timestampMilliSecIndex = len(timestampFormat) - 4
)

func (l *Log) Write(p []byte) (n int, err error) {
	buf := make([]byte, 0, len(timestampFormat)+1+len(p))
	buf = append(buf, time.Now().Format(timestampFormat)...)
	buf = append(buf, ' ')
	buf = append(buf, p...)
	buf[timestampMilliSecIndex] = ','
	if _, err = l.logger.Write(buf); err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetLog routes the standard logger to a rotating file. An empty file
// keeps logging on stderr.
func SetLog(file string, maxSize int, maxBackups int, localtime bool) {
	log.SetFlags(log.Lshortfile)
	if len(file) == 0 {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
		log.SetOutput(os.Stderr)
		return
	}
	log.SetOutput(newLogWriter(file, maxSize, maxBackups, localtime))
}

func newLogWriter(file string, maxSize int, maxBackups int, localtime bool) io.Writer {
	return &Log{
		lumberjack.Logger{
			Filename:   file,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			LocalTime:  localtime,
		},
	}
}
