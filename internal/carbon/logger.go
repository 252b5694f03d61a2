package carbon

import "github.com/rs/zerolog"

// logger is used for configuration loading diagnostics. Disabled until SetLogger is called.
var logger = zerolog.Nop()

// SetLogger replaces the package logger. It is not safe to call concurrently
// with configuration loading.
func SetLogger(l zerolog.Logger) {
	logger = l.With().Str("component", "carbon").Logger()
}
