package conf

import (
	"go.uber.org/zap/zapcore"

	"syscheck/internal/report"
)

type Config struct {
	Output    report.Mode
	ProcRoot  string
	LogLevel  zapcore.Level
	LogFormat string
}
