package conf

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the stderr logger described by c
func (c Config) NewLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel)
	zc.Encoding = c.LogFormat
	if zc.Encoding == "" {
		zc.Encoding = Default.LogFormat
	}
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.Sampling = nil
	zc.DisableStacktrace = true

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger %w", err)
	}
	return log, nil
}
