package log

import (
	"fmt"

	"gopkg.in/Sirupsen/logrus.v0"
)

type Fields logrus.Fields

// Entry is a printf-style entry bound to a module. Fields are only computed
// when the entry is actually emitted.
type Entry struct {
	mod        Module
	lazyfields [4]func() Fields
}

func (entry Entry) WithFields(fields Fields) Entry {
	return entry.WithDelayedFields(func() Fields { return fields })
}

func (entry Entry) WithField(key string, value any) Entry {
	return entry.WithDelayedFields(func() Fields { return Fields{key: value} })
}

// WithDelayedFields adds a function returning fields, called only if the entry
// gets emitted. Fields beyond capacity are silently dropped.
func (entry Entry) WithDelayedFields(getfields func() Fields) Entry {
	for idx := range entry.lazyfields {
		if entry.lazyfields[idx] == nil {
			entry.lazyfields[idx] = getfields
			break
		}
	}
	return entry
}

func (entry Entry) logf(lvl Level, format string, args ...any) {
	if !entry.mod.Enabled(lvl) {
		return
	}

	fields := logrus.Fields{"_mod": entry.mod.String()}
	for _, lf := range entry.lazyfields {
		if lf == nil {
			break
		}
		for k, v := range lf() {
			fields[k] = v
		}
	}

	var z EntryZ
	addContexts(&z)
	for i := range z.zfbuf[:z.zfidx] {
		fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
	}

	emit(logrus.StandardLogger().WithFields(fields), lvl, fmt.Sprintf(format, args...))
}

func (entry Entry) Debugf(format string, args ...any) { entry.logf(DebugLevel, format, args...) }
func (entry Entry) Infof(format string, args ...any)  { entry.logf(InfoLevel, format, args...) }
func (entry Entry) Warnf(format string, args ...any)  { entry.logf(WarnLevel, format, args...) }
func (entry Entry) Errorf(format string, args ...any) { entry.logf(ErrorLevel, format, args...) }
func (entry Entry) Fatalf(format string, args ...any) { entry.logf(FatalLevel, format, args...) }
func (entry Entry) Panicf(format string, args ...any) { entry.logf(PanicLevel, format, args...) }
