package generator

import (
	"fmt"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
)

const (
	// DefaultMaxOutputTokens は画像生成リクエストの出力トークン上限です。
	DefaultMaxOutputTokens = 2048
	// DefaultCandidateCount は要求する候補数です。
	DefaultCandidateCount = 1

	cleanTemperature    = 0.1
	bakedTemperature    = 0.3
	fallbackTemperature = 0.3
)

// ResponseModalities は画像と説明テキストの両方を要求します。
var ResponseModalities = []string{"IMAGE", "TEXT"}

// Models は起動時に一度だけ決まるモデル ID の組です。
// TextToImage と Fallback が同じ値でも、フォールバック経路は別の呼び出しとして扱われます。
type Models struct {
	Clean       string
	TextToImage string
	Fallback    string
}

// Validate は必須のモデル ID が揃っているか確認します。
func (m Models) Validate() error {
	if m.Clean == "" {
		return fmt.Errorf("clean model is required")
	}
	if m.TextToImage == "" {
		return fmt.Errorf("text-to-image model is required")
	}
	if m.Fallback == "" {
		return fmt.Errorf("fallback model is required")
	}
	return nil
}

// Primary はモードに対応する一次モデルを返します。
func (m Models) Primary(mode domain.Mode) string {
	if mode == domain.ModeTextBaked {
		return m.TextToImage
	}
	return m.Clean
}

// DefaultSampling はモードごとの既定のサンプリング設定を返します。
func DefaultSampling(mode domain.Mode) domain.SamplingConfig {
	temp := float32(cleanTemperature)
	if mode == domain.ModeTextBaked {
		temp = bakedTemperature
	}
	return domain.SamplingConfig{
		Temperature:        temp,
		MaxOutputTokens:    DefaultMaxOutputTokens,
		CandidateCount:     DefaultCandidateCount,
		ResponseModalities: append([]string(nil), ResponseModalities...),
	}
}

// FallbackSampling はフォールバックモデル用のサンプリング設定です。
func FallbackSampling() domain.SamplingConfig {
	return domain.SamplingConfig{
		Temperature:        fallbackTemperature,
		MaxOutputTokens:    DefaultMaxOutputTokens,
		CandidateCount:     DefaultCandidateCount,
		ResponseModalities: append([]string(nil), ResponseModalities...),
	}
}

// isZeroSampling はサンプリング設定が未指定かどうかを返します。
func isZeroSampling(s domain.SamplingConfig) bool {
	return s.Temperature == 0 && s.MaxOutputTokens == 0 && s.CandidateCount == 0 && len(s.ResponseModalities) == 0
}
