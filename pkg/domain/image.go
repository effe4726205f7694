package domain

import "fmt"

// Mode は生成バックエンドに要求する画像の種類です。
type Mode int

const (
	// ModeClean はテキストを含まない商品画像を生成し、後からテキストを合成します。
	ModeClean Mode = iota
	// ModeTextBaked は広告テキストを画像内に描き込ませます。
	ModeTextBaked
)

func (m Mode) String() string {
	switch m {
	case ModeClean:
		return "clean"
	case ModeTextBaked:
		return "text_baked"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// SamplingConfig は生成リクエストに付与するサンプリング設定です。
type SamplingConfig struct {
	Temperature        float32
	MaxOutputTokens    int32
	CandidateCount     int32
	ResponseModalities []string
}

// GenerationRequest は単一の広告画像生成要求です。
// FallbackPrompt は ModeTextBaked でフォールバックモデルへ切り替える際に使います。
type GenerationRequest struct {
	Mode           Mode
	Prompt         string
	FallbackPrompt string
	Model          string
	Sampling       SamplingConfig
}

// OutcomeKind は GenerationOutcome のタグです。
type OutcomeKind int

const (
	OutcomeImage OutcomeKind = iota
	OutcomeNoImage
	OutcomeFailure
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeImage:
		return "image"
	case OutcomeNoImage:
		return "no_image"
	case OutcomeFailure:
		return "failure"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome は生成処理の結果を表すタグ付きの値です。
// Data と MimeType は OutcomeImage の場合のみ、Err と Busy は OutcomeFailure の場合のみ意味を持ちます。
type Outcome struct {
	Kind         OutcomeKind
	Data         []byte
	MimeType     string
	UsedFallback bool
	Err          error
	Busy         bool // 過負荷・レート制限など、時間をおいて再試行すべき失敗
}

// ImageOutcome は画像を取得できた結果を生成します。
func ImageOutcome(data []byte, mimeType string, usedFallback bool) Outcome {
	return Outcome{Kind: OutcomeImage, Data: data, MimeType: mimeType, UsedFallback: usedFallback}
}

// NoImageOutcome は応答に画像が含まれていなかった結果を生成します。
func NoImageOutcome(usedFallback bool) Outcome {
	return Outcome{Kind: OutcomeNoImage, UsedFallback: usedFallback}
}

// FailureOutcome は生成に失敗した結果を生成します。
func FailureOutcome(err error, busy bool) Outcome {
	return Outcome{Kind: OutcomeFailure, Err: err, Busy: busy}
}

// RenderedAd は呼び出し元へ引き渡す完成済みの広告画像です。
type RenderedAd struct {
	Data           []byte
	MimeType       string
	Mode           Mode
	UsedFallback   bool
	OverlayApplied bool
	Filename       string
}
