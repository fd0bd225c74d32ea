package conf

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"syscheck/internal/procfs"
	"syscheck/internal/report"
)

const (
	KeyOutput    = "output"
	KeyProcRoot  = "proc-root"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"

	// EnvPrefix namespaces the environment form of every key, e.g. SYSCHECK_PROC_ROOT
	EnvPrefix = "SYSCHECK"

	// CSVToggleEnv selects CSV output when set to anything but a false value
	CSVToggleEnv = "CSVOUTPUT"
)

// Default values
var Default = Config{
	Output:    report.ModeText,
	ProcRoot:  procfs.DefaultRoot,
	LogLevel:  zapcore.WarnLevel,
	LogFormat: "console",
}

// BindFlags registers the command-line form of every key on fs
func BindFlags(fs *pflag.FlagSet) {
	fs.StringP(KeyOutput, "o", Default.Output.String(), "Output format: text, csv, toml or prom")
	fs.String(KeyProcRoot, Default.ProcRoot, "Mount point of procfs")
	fs.String(KeyLogLevel, Default.LogLevel.String(), "Log level: debug, info, warn or error")
	fs.String(KeyLogFormat, Default.LogFormat, "Log encoding: console or json")
}

// Load merges, lowest precedence first, defaults, a .env file, the
// environment and the flags in fs. fs may be nil.
func Load(fs *pflag.FlagSet, envFiles ...string) (Config, error) {
	// A missing .env is normal; the process environment is used as is.
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyOutput, Default.Output.String())
	v.SetDefault(KeyProcRoot, Default.ProcRoot)
	v.SetDefault(KeyLogLevel, Default.LogLevel.String())
	v.SetDefault(KeyLogFormat, Default.LogFormat)

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("failed to bind flags %w", err)
		}
	}

	output := v.GetString(KeyOutput)
	if !outputExplicit(fs) && csvToggle(os.Getenv(CSVToggleEnv)) {
		output = report.ModeCSV.String()
	}
	mode, err := report.ParseMode(output)
	if err != nil {
		return Config{}, err
	}

	level, err := zapcore.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}

	format := strings.ToLower(v.GetString(KeyLogFormat))
	if format != "console" && format != "json" {
		return Config{}, fmt.Errorf("invalid %s %q (want console or json)", KeyLogFormat, format)
	}

	root := v.GetString(KeyProcRoot)
	if root == "" {
		root = Default.ProcRoot
	}

	return Config{
		Output:    mode,
		ProcRoot:  root,
		LogLevel:  level,
		LogFormat: format,
	}, nil
}

// outputExplicit reports whether --output or SYSCHECK_OUTPUT was given
func outputExplicit(fs *pflag.FlagSet) bool {
	if fs != nil && fs.Changed(KeyOutput) {
		return true
	}
	return os.Getenv(EnvPrefix+"_OUTPUT") != ""
}

// csvToggle treats any non-empty value as on unless it parses as false,
// so CSVOUTPUT=0 keeps the text report
func csvToggle(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	on, err := cast.ToBoolE(value)
	if err != nil {
		return true
	}
	return on
}
