package port

// Fields carries structured data into the log.
type Fields map[string]interface{}

// LoggerPort is the logging contract the core depends on; adapters wire it
// to slog and fluent-bit.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields returns a logger with the fields already attached.
	WithFields(fields Fields) LoggerPort
}
