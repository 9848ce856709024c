package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/maxaizer/placement-portal/internal/config"
	"github.com/maxaizer/placement-portal/pkg/loki"
	log "github.com/sirupsen/logrus"
)

const ErrorTypeField = "error_type"

const (
	ErrorTypeDb      = "db"
	ErrorTypeAiApi   = "ai_api"
	ErrorTypeHttp    = "http"
	ErrorTypeStorage = "storage"
	ErrorTypeTgApi   = "tg_api"
	ErrorTypeCache   = "cache"
	ErrorTypePdf     = "pdf"
)

var (
	logFile    *os.File
	lokiPusher *loki.Pusher
)

func Setup(ctx context.Context, cfg config.LoggerConfig) {

	var writers = []io.Writer{os.Stdout}

	if cfg.OutputFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0755); err != nil {
			log.Fatalf("Failed to create log directory: %v", err)
		}

		file, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000 -0700",
	})
	log.SetReportCaller(true)

	level := toLogrusLevel(cfg.LogLevel)
	log.SetLevel(level)

	addPrometheusHook()

	if cfg.LokiURL != "" {
		err := addLokiHook(ctx, loki.Config{
			Url:      cfg.LokiURL,
			Username: cfg.LokiUser,
			Password: cfg.LokiPassword,
			Labels:   map[string]string{"app": cfg.AppName},
		}, level)
		if err != nil {
			log.Errorf("failed to enable loki logging: %v", err)
		}
	}
}

func toLogrusLevel(level config.Level) log.Level {
	switch level {
	case config.LevelDebug:
		return log.DebugLevel
	case config.LevelWarning:
		return log.WarnLevel
	case config.LevelError:
		return log.ErrorLevel
	case config.LevelFatal:
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

func Cleanup() {
	if lokiPusher != nil {
		lokiPusher.Stop()
	}
	if logFile != nil {
		_ = logFile.Close()
	}
}
