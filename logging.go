package pathtracer

import "go.uber.org/zap"

// NewLogger builds the package's structured logger: a production zap
// config at info level, or a development config (colored, caller-line)
// when verbose is set. Mirrors how sibling pack repo nicolasmd87-
// gopher3D wires zap at startup rather than using the stdlib log
// package.
func NewLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
