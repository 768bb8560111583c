package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger 创建新的Logger实例
// level: "debug", "info", "warn", "error" (默认: "info")
// format: "json" 或 "console" (默认: "json")
// serviceName: 服务名称（如 "glucosense"）
// output: "stdout"、"stderr" 或日志文件路径（终端表单模式需要写文件，避免破坏界面）
func NewLogger(level, format, serviceName, output string) (*zap.Logger, error) {
	zapLevel := parseLevel(level)

	var config zap.Config
	if format == "console" {
		// 开发模式配置（控制台输出）
		config = zap.NewDevelopmentConfig()
	} else {
		// 生产模式配置（JSON输出）
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	if output == "" {
		output = "stderr"
	}
	config.OutputPaths = []string{output}
	config.ErrorOutputPaths = []string{"stderr"}

	baseLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	if serviceName != "" {
		baseLogger = baseLogger.With(zap.String("service_name", serviceName))
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		baseLogger = baseLogger.With(zap.String("hostname", hostname))
	}

	return baseLogger, nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
