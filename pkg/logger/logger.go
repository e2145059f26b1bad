// Package logger is a thin fan-out facade. Binaries register one or more
// backends at startup with Init; library code logs through the package-level
// functions and stays unaware of where the output goes. Before Init is
// called every log call is a no-op, which keeps tests quiet.
package logger

// LoggerInstance is a logging backend.
type LoggerInstance interface {
	Log(message string, keyvals ...any)
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

var backends []LoggerInstance

// Init replaces the registered backends. Call once at startup, before any
// goroutine starts logging.
func Init(instances ...LoggerInstance) {
	backends = instances
}

func each(fn func(LoggerInstance)) {
	for _, b := range backends {
		fn(b)
	}
}

// Log writes at the backend's default level.
func Log(message string, keyvals ...any) {
	each(func(b LoggerInstance) { b.Log(message, keyvals...) })
}

func Debug(message string, keyvals ...any) {
	each(func(b LoggerInstance) { b.Debug(message, keyvals...) })
}

func Info(message string, keyvals ...any) {
	each(func(b LoggerInstance) { b.Info(message, keyvals...) })
}

func Warn(message string, keyvals ...any) {
	each(func(b LoggerInstance) { b.Warn(message, keyvals...) })
}

func Error(message string, keyvals ...any) {
	each(func(b LoggerInstance) { b.Error(message, keyvals...) })
}

// Fatal logs on every backend; a backend that terminates the program (the
// console backend does) cuts the fan-out short.
func Fatal(message string, keyvals ...any) {
	each(func(b LoggerInstance) { b.Fatal(message, keyvals...) })
}
