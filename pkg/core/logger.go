package core

import "go.uber.org/zap"

// Logger is the seam the renderer logs through. Any Printf-shaped sink can
// satisfy it; callers that don't want zap's structured output can supply
// their own implementation (the stdlib *log.Logger already does).
type Logger interface {
	Printf(format string, args ...interface{})
}

// zapLogger adapts a zap.SugaredLogger to the Printf-shaped Logger seam.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds the default Logger, backed by a production zap
// configuration (JSON encoding, Info level, caller omitted — render-loop
// messages are one-liners, not stack-trace-worthy).
func NewZapLogger() (Logger, func(), error) {
	cfg := zap.NewProductionConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, func() {}, err
	}

	sugar := logger.Sugar()
	return &zapLogger{sugar: sugar}, func() { _ = logger.Sync() }, nil
}

func (l *zapLogger) Printf(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// NopLogger discards everything written to it. Useful for tests and library
// callers that have not wired a sink.
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}
