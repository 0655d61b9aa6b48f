package logging

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type impl struct {
	name  string
	level AtomicLevel
	inUTC bool

	appenders []Appender
	// fields are attached to every entry, ahead of the per call ones.
	fields []zapcore.Field
}

func (imp *impl) AddAppender(appender Appender) {
	imp.appenders = append(imp.appenders, appender)
}

func (imp *impl) SetLevel(level Level) {
	imp.level.Set(level)
}

func (imp *impl) GetLevel() Level {
	return imp.level.Get()
}

func (imp *impl) Sublogger(subname string) Logger {
	newName := subname
	if imp.name != "" {
		newName = fmt.Sprintf("%s.%s", imp.name, subname)
	}
	return imp.derive(newName, NewAtomicLevelAt(imp.level.Get()), nil)
}

func (imp *impl) With(keysAndValues ...interface{}) Logger {
	return imp.derive(imp.name, imp.level, keyValueFields(keysAndValues))
}

// derive copies the logger. The appenders are shared, the fields are not.
func (imp *impl) derive(name string, level AtomicLevel, extra []zapcore.Field) *impl {
	fields := make([]zapcore.Field, 0, len(imp.fields)+len(extra))
	fields = append(fields, imp.fields...)
	fields = append(fields, extra...)
	return &impl{
		name:      name,
		level:     level,
		inUTC:     imp.inUTC,
		appenders: imp.appenders,
		fields:    fields,
	}
}

func (imp *impl) Sync() error {
	var errs []error
	for _, appender := range imp.appenders {
		if err := appender.Sync(); err != nil {
			errs = append(errs, err)
		}
	}
	return multierr.Combine(errs...)
}

// emit must be called straight from the exported logging methods; the caller lookup counts
// on it.
func (imp *impl) emit(logLevel Level, msg string, fields []zapcore.Field) {
	entry := zapcore.Entry{
		LoggerName: imp.name,
		Time:       time.Now(),
		Level:      logLevel.AsZap(),
		Message:    msg,
		Caller:     getCaller(),
	}
	if imp.inUTC {
		entry.Time = entry.Time.UTC()
	}
	if len(imp.fields) > 0 {
		fields = append(append(make([]zapcore.Field, 0, len(imp.fields)+len(fields)), imp.fields...), fields...)
	}

	for _, appender := range imp.appenders {
		if err := appender.Write(entry, fields); err != nil {
			fmt.Fprint(os.Stderr, err)
		}
	}
}

// keyValueFields pairs up keys and values. Keys are printed with %v, values are json
// serialized, public fields only.
func keyValueFields(keysAndValues []interface{}) []zapcore.Field {
	fields := make([]zapcore.Field, 0, (len(keysAndValues)+1)/2)
	for keyIdx := 0; keyIdx < len(keysAndValues); keyIdx += 2 {
		keyStr := fmt.Sprintf("%v", keysAndValues[keyIdx])
		if keyIdx+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(keyStr, keysAndValues[keyIdx+1]))
		} else {
			// API mis-use. Keep the key rather than dropping it silently.
			fields = append(fields, zap.Any(keyStr, errors.New("unpaired log key")))
		}
	}
	return fields
}

func (imp *impl) Debug(args ...interface{}) {
	if imp.level.Enabled(DEBUG) {
		imp.emit(DEBUG, fmt.Sprint(args...), nil)
	}
}

func (imp *impl) Debugf(template string, args ...interface{}) {
	if imp.level.Enabled(DEBUG) {
		imp.emit(DEBUG, fmt.Sprintf(template, args...), nil)
	}
}

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	if imp.level.Enabled(DEBUG) {
		imp.emit(DEBUG, msg, keyValueFields(keysAndValues))
	}
}

func (imp *impl) Info(args ...interface{}) {
	if imp.level.Enabled(INFO) {
		imp.emit(INFO, fmt.Sprint(args...), nil)
	}
}

func (imp *impl) Infof(template string, args ...interface{}) {
	if imp.level.Enabled(INFO) {
		imp.emit(INFO, fmt.Sprintf(template, args...), nil)
	}
}

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	if imp.level.Enabled(INFO) {
		imp.emit(INFO, msg, keyValueFields(keysAndValues))
	}
}

func (imp *impl) Warn(args ...interface{}) {
	if imp.level.Enabled(WARN) {
		imp.emit(WARN, fmt.Sprint(args...), nil)
	}
}

func (imp *impl) Warnf(template string, args ...interface{}) {
	if imp.level.Enabled(WARN) {
		imp.emit(WARN, fmt.Sprintf(template, args...), nil)
	}
}

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	if imp.level.Enabled(WARN) {
		imp.emit(WARN, msg, keyValueFields(keysAndValues))
	}
}

func (imp *impl) Error(args ...interface{}) {
	if imp.level.Enabled(ERROR) {
		imp.emit(ERROR, fmt.Sprint(args...), nil)
	}
}

func (imp *impl) Errorf(template string, args ...interface{}) {
	if imp.level.Enabled(ERROR) {
		imp.emit(ERROR, fmt.Sprintf(template, args...), nil)
	}
}

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	if imp.level.Enabled(ERROR) {
		imp.emit(ERROR, msg, keyValueFields(keysAndValues))
	}
}

// getCaller returns the code location that called the exported logging method, e.g.
// "pointcloud/basic.go:35".
func getCaller() zapcore.EntryCaller {
	// getCaller, emit, the logging method, then its caller
	const skipToLogCaller = 3
	var entryCaller zapcore.EntryCaller
	var ok bool
	entryCaller.PC, entryCaller.File, entryCaller.Line, ok = runtime.Caller(skipToLogCaller)
	if !ok {
		return entryCaller
	}
	entryCaller.Defined = true
	if fn := runtime.FuncForPC(entryCaller.PC); fn != nil {
		entryCaller.Function = fn.Name()
	}
	return entryCaller
}
