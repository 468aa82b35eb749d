// Package config は環境変数ベースのランタイム設定を提供します。
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config はプロセス全体のランタイム設定です。
type Config struct {
	// Addr はHTTPサーバーの待受アドレスです。
	Addr string

	// TempDir はアップロードされたテンプレートの一時保存先です。
	// 空の場合はOSのデフォルトが使われます。
	TempDir string

	// ExposeErrorDetails がtrueの場合、内部エラーの詳細をクライアントに公開します。
	// 開発中は有効、本番（releaseモード）ではデフォルト無効です。
	ExposeErrorDetails bool

	// RenderRateLimit は文書生成エンドポイントのウィンドウあたり許容リクエスト数です。
	RenderRateLimit int

	// RenderRateInterval はレートリミットのウィンドウ幅です。
	RenderRateInterval time.Duration
}

// Load は.envファイル（存在すれば）と環境変数からConfigを構築します。
func Load() Config {
	// .envが無くてもエラーにしない。本番は実環境変数で渡される
	if err := godotenv.Load(); err != nil {
		slog.Debug(".envファイルが見つかりません", "error", err)
	}

	cfg := Config{
		Addr:               ":8080",
		TempDir:            os.Getenv("TMP_DIR"),
		ExposeErrorDetails: gin.Mode() != gin.ReleaseMode,
		RenderRateLimit:    30,
		RenderRateInterval: time.Minute,
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if v := os.Getenv("EXPOSE_ERROR_DETAILS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ExposeErrorDetails = b
		}
	}
	if v := os.Getenv("RENDER_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RenderRateLimit = n
		}
	}
	return cfg
}
