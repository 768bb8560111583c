package config

import (
	"os"
	"strconv"
	"time"
)

// Config glucosense 客户端配置（环境变量 + 默认值，命令行参数可覆盖）
type Config struct {
	Prediction struct {
		BaseURL string        // 预测服务地址
		Path    string        // 预测接口路径
		Timeout time.Duration // 单次请求超时
	}
	HTTP struct {
		Addr string // serve 模式监听地址
	}
	Report struct {
		Dir    string // 报告输出目录
		Format string // pdf | xlsx | md
	}
	Log struct {
		Level  string
		Format string
		Output string // stdout | stderr | 文件路径
	}
}

func Load() *Config {
	cfg := &Config{}
	cfg.Prediction.BaseURL = getEnv("PREDICTION_API_URL", "http://localhost:8000")
	cfg.Prediction.Path = getEnv("PREDICTION_PATH", "/diabetes_prediction")
	cfg.Prediction.Timeout = time.Duration(parseInt(getEnv("PREDICTION_TIMEOUT", "30"), 30)) * time.Second

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8090")

	cfg.Report.Dir = getEnv("REPORT_DIR", ".")
	cfg.Report.Format = getEnv("REPORT_FORMAT", "pdf")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")
	cfg.Log.Output = getEnv("LOG_OUTPUT", "stderr")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return def
	}
	return i
}
