package log

import (
	"io"

	"gopkg.in/Sirupsen/logrus.v0"
)

// Level mirrors logrus levels: lower is more severe.
type Level uint8

const (
	PanicLevel Level = Level(logrus.PanicLevel)
	FatalLevel Level = Level(logrus.FatalLevel)
	ErrorLevel Level = Level(logrus.ErrorLevel)
	WarnLevel  Level = Level(logrus.WarnLevel)
	InfoLevel  Level = Level(logrus.InfoLevel)
	DebugLevel Level = Level(logrus.DebugLevel)
)

func (lvl Level) String() string {
	return logrus.Level(lvl).String()
}

// SetOutput sets the destination of all log modules.
func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

func emit(e *logrus.Entry, lvl Level, msg string) {
	switch lvl {
	case DebugLevel:
		e.Debug(msg)
	case InfoLevel:
		e.Info(msg)
	case WarnLevel:
		e.Warn(msg)
	case ErrorLevel:
		e.Error(msg)
	case FatalLevel:
		e.Fatal(msg)
	case PanicLevel:
		e.Panic(msg)
	}
}
