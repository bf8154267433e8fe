package cmd

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "stepcalc"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName      = "output"
	verboseFlagName     = "verbose"
	logFileFlagName     = "log-file"
	runParallelFlagName = "parallel"
	shardFlagName       = "shard"
	operationFlagName   = "op"
	wrtFlagName         = "wrt"
	setFlagName         = "set"

	runParallelConfigKey = "run.parallel"
	evalOperationKey     = "eval.operation"
	evalWrtKey           = "eval.wrt"

	defaultReportsDir  = ".stepcalc-reports"
	defaultRunParallel = 1
	defaultOperation   = "evaluate"
	defaultWrt         = "x"

	envPrefix = "STEPCALC"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".stepcalc.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

// configReadErr keeps a config file that exists but could not be read. It is
// reported once the logger is configured.
var configReadErr error

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(evalOperationKey, defaultOperation)
	viper.SetDefault(evalWrtKey, defaultWrt)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	configReadErr = readConfig()
}

// readConfig loads stepcalc.yaml. Running without one is the common case.
func readConfig() error {
	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// numeric slog levels, e.g. -4 for debug
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// logSettings is the log.* configuration after flags, env and file are merged.
type logSettings struct {
	path       string
	level      slog.Level
	maxSize    int
	maxBackups int
	maxAge     int
	compress   bool
}

func loadLogSettings(logPath string, verbose bool) logSettings {
	s := logSettings{
		path:       strings.TrimSpace(logPath),
		level:      parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo),
		maxSize:    viper.GetInt(logMaxSizeKey),
		maxBackups: viper.GetInt(logMaxBackupsKey),
		maxAge:     viper.GetInt(logMaxAgeKey),
		compress:   viper.GetBool(logCompressKey),
	}

	if s.path == "" {
		s.path = strings.TrimSpace(viper.GetString(logFilenameKey))
	}

	if s.path == "" {
		s.path = defaultLogFilename
	}

	if verbose {
		s.level = slog.LevelDebug
	}

	return s
}

func (s logSettings) writer() io.Writer {
	return &lumberjack.Logger{
		Filename:   s.path,
		MaxSize:    s.maxSize,
		MaxBackups: s.maxBackups,
		MaxAge:     s.maxAge,
		Compress:   s.compress,
	}
}

// configureLogger installs the global slog logger. Every record carries the
// app name and the default operation so log files of batch runs with
// different configurations can be told apart.
func configureLogger(logPath string, verbose bool) {
	settings := loadLogSettings(logPath, verbose)

	handler := slog.NewTextHandler(settings.writer(), &slog.HandlerOptions{
		AddSource: true,
		Level:     settings.level,
	})

	globalLogger = slog.New(handler).With(
		"app", configBaseName,
		"operation", viper.GetString(evalOperationKey),
	)
	slog.SetDefault(globalLogger)

	if configReadErr != nil {
		globalLogger.Warn("Ignoring unreadable config file", "file", viper.ConfigFileUsed(), "error", configReadErr)
	}

	globalLogger.Debug("Logger configured", "file", settings.path, "level", settings.level, "reports", viper.GetString(outputFlagName))
}
