package logging

// Logger interface for logging to.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})

	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})

	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})

	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Sublogger returns a logger named "<name>.<subname>" sharing this logger's appenders.
	Sublogger(subname string) Logger
	// With returns a logger that adds keysAndValues to every entry. It shares this logger's
	// name, level and appenders.
	With(keysAndValues ...interface{}) Logger
	// AddAppender adds an output for all future log entries.
	AddAppender(appender Appender)
	SetLevel(level Level)
	GetLevel() Level
	// Sync flushes every appender.
	Sync() error
}
