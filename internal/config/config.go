package config

import (
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
// デモ用途のため必須の環境変数はなく、すべてデフォルト値を持つ。
// 管理者の認証情報は仕様上ハードコードであり、設定項目にしない。
type Config struct {
	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string

	// Session
	SessionFile string // 永続スロットのファイルパス

	// 人工レイテンシ
	LoginDelay   time.Duration // ログインのネットワーク往復を模した待機
	AnalyzeDelay time.Duration // 推論時間を模した待機

	// 画像取り込み
	FetchTimeout time.Duration
	FetchMaxSize int64

	// Rate Limit（req/min/user）
	RateLimitGeneral int
	RateLimitAnalyze int
}

// Load は環境変数からConfigを読み込む。
func Load() *Config {
	return &Config{
		ServerPort:        getEnvString("SERVER_PORT", "8080"),
		CORSAllowedOrigin: getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		SessionFile:       getEnvString("SESSION_FILE", "session.json"),
		LoginDelay:        getEnvDuration("LOGIN_DELAY", 1*time.Second),
		AnalyzeDelay:      getEnvDuration("ANALYZE_DELAY", 1500*time.Millisecond),
		FetchTimeout:      getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		FetchMaxSize:      getEnvInt64("FETCH_MAX_SIZE", 5242880),
		RateLimitGeneral:  getEnvInt("RATE_LIMIT_GENERAL", 120),
		RateLimitAnalyze:  getEnvInt("RATE_LIMIT_ANALYZE", 10),
	}
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
