package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット（検証用。発行は外部IDプロバイダ）

	GoEnv string // dev/prod
	FEURL string // フロントURL（CORSなどで使う）
}

// Loadは環境変数
// DB接続はdb.Connect側がDATABASE_URL/POSTGRES_*を直接読む。
func Load() (Config, error) {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		GoEnv:     os.Getenv("GO_ENV"),
		FEURL:     os.Getenv("FE_URL"),
	}

	//必須チェック
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}

	return cfg, nil
}
