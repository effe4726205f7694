package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultVisionModel         = "gemini-1.5-flash"
	DefaultTextModel           = "gemini-1.5-flash"
	DefaultImageModel          = "gemini-2.0-flash-preview-image-generation"
	DefaultHTTPTimeout         = 30 * time.Second
	DefaultRateLimit           = 5 * time.Second // batch で生成リクエストを投げる最小間隔
	DefaultConcurrency         = 2
	DefaultOutputDir           = "output"
	DefaultConceptTemperature  = float32(0.2)
	DefaultReferenceCacheTTL   = 30 * time.Minute
	DefaultReferenceCacheSweep = time.Hour
)

// Config はアプリケーション全体の環境設定（APIキーやモデル名）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey string

	VisionModel        string
	TextModel          string
	CleanImageModel    string
	TextToImageModel   string
	FallbackModel      string
	TitleFontPath      string
	BodyFontPath       string
	HTTPTimeout        time.Duration
	LogLevel           slog.Level
	ConceptTemperature float32

	Options GenerateOptions
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	ProductFile    string        // --product
	ImageURLs      []string      // --image
	OutputDir      string        // --output-dir
	UseTextOverlay bool          // --overlay
	WithConcept    bool          // --concept
	HTTPTimeout    time.Duration // --http-timeout

	// batch 専用
	Concurrency int           // --concurrency
	RateLimit   time.Duration // --rate-limit
}

// LoadConfig は .env と環境変数から設定を読み込み、構造体を返すのだ！
// .env が存在しない場合は環境変数だけで続行するのだ。
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn(".env の読み込みに失敗したのだ", "error", err)
	}

	cfg := &Config{
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", getEnv("GOOGLE_API_KEY", "")),
		VisionModel:        getEnv("VISION_MODEL", DefaultVisionModel),
		TextModel:          getEnv("TEXT_MODEL", DefaultTextModel),
		CleanImageModel:    getEnv("IMAGE_GENERATION_MODEL", DefaultImageModel),
		TextToImageModel:   getEnv("TEXT_TO_IMAGE_MODEL", DefaultImageModel),
		FallbackModel:      getEnv("FALLBACK_TEXT_TO_IMAGE_MODEL", DefaultImageModel),
		TitleFontPath:      getEnv("TITLE_FONT_PATH", ""),
		BodyFontPath:       getEnv("BODY_FONT_PATH", ""),
		HTTPTimeout:        parseDuration(getEnv("HTTP_TIMEOUT", ""), DefaultHTTPTimeout),
		LogLevel:           parseLevel(getEnv("LOG_LEVEL", "info")),
		ConceptTemperature: DefaultConceptTemperature,
	}
	return cfg
}

// ApplyOptions は CLI フラグの値を設定に反映するのだ。
func (c *Config) ApplyOptions(opts GenerateOptions) {
	c.Options = opts
	if opts.HTTPTimeout > 0 {
		c.HTTPTimeout = opts.HTTPTimeout
	}
}

// getEnv は空文字の環境変数も未設定として扱うのだ。
func getEnv(key, def string) string {
	if v := strings.TrimSpace(envutil.GetEnv(key, "")); v != "" {
		return v
	}
	return def
}

func parseDuration(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("HTTP_TIMEOUT の値が不正なのでデフォルトを使うのだ", "value", raw, "default", def)
		return def
	}
	return d
}

func parseLevel(raw string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(raw)))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
