package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/utils"
)

// 説明文を埋め込む際の最大文字数
const (
	cleanStyledLimit     = 350
	cleanDescribedLimit  = 400
	bakedStyledLimit     = 300
	bakedDescribedLimit  = 250
	fallbackDetailsLimit = 300
)

const defaultFallbackBackground = "Professional gradient background"

// Composer は、商品情報と参照画像の説明から広告画像のプロンプトを組み立てます。
type Composer struct{}

// NewComposer は新しい Composer を生成します。
func NewComposer() *Composer {
	return &Composer{}
}

// Compose は素材の揃い具合に応じて3段階のテンプレートから1つを選びます。
func (c *Composer) Compose(in Input, mode domain.Mode) string {
	if mode == domain.ModeTextBaked {
		return c.composeTextBaked(in)
	}
	return c.composeClean(in)
}

func (c *Composer) composeClean(in Input) string {
	title := in.Product.Title
	priceNote := fmt.Sprintf("Price point for context only, never render it: %s", in.Product.Price)
	var sb strings.Builder

	switch {
	case in.ImageDescription != "" && in.BackgroundStyle != "":
		sb.WriteString(fmt.Sprintf("Professional studio photograph of %s.\n\n", title))
		sb.WriteString(fmt.Sprintf("IMPORTANT: The product must match this exact description: %s\n\n", utils.TruncateRunes(in.ImageDescription, cleanStyledLimit)))
		writeRequirements(&sb, "Requirements:",
			"Same product as described above with identical visual characteristics",
			in.BackgroundStyle,
			"Product prominently featured and well-lit in center",
			"Professional studio lighting with soft shadows",
			"High quality product photography",
			"Square format (1:1 ratio)",
			"Instagram-ready composition",
			"No text or watermarks on the image",
			"Sophisticated and modern aesthetic",
			"Clean, professional look suitable for advertising",
			priceNote,
		)
	case in.ImageDescription != "":
		sb.WriteString(fmt.Sprintf("Professional studio photograph of %s.\n\n", title))
		sb.WriteString(fmt.Sprintf("IMPORTANT: The product must match this exact description: %s\n\n", utils.TruncateRunes(in.ImageDescription, cleanDescribedLimit)))
		writeRequirements(&sb, "Requirements:",
			"Same product as described above with identical visual characteristics",
			"Stylish gradient background with colors matching the product",
			"Product prominently featured and well-lit",
			"Professional studio lighting",
			"High quality product photography",
			"Square format (1:1 ratio)",
			"No text or watermarks",
			priceNote,
		)
	default:
		sb.WriteString(fmt.Sprintf("Professional studio photograph of %s.\n", title))
		sb.WriteString("Modern gradient background with colors that complement the product.\n")
		sb.WriteString("Product prominently featured with professional lighting.\n")
		sb.WriteString("Square format. High quality. Instagram-ready composition.\n")
		sb.WriteString("No text or watermarks on the image.\n")
		sb.WriteString(priceNote + ".")
	}
	return strings.TrimSpace(sb.String())
}

func (c *Composer) composeTextBaked(in Input) string {
	title, price := in.Product.Title, in.Product.Price
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create a professional Instagram advertisement image (1080x1080) for %s.\n", title))

	switch {
	case in.ImageDescription != "" && in.BackgroundStyle != "":
		sb.WriteString(fmt.Sprintf("\nProduct details: %s\n", utils.TruncateRunes(in.ImageDescription, bakedStyledLimit)))
		sb.WriteString(fmt.Sprintf("Price: %s\n\n", price))
		writeRequirements(&sb, "Requirements:",
			"Show the exact product as described above",
			in.BackgroundStyle,
			"Include Spanish advertising text on the image",
			"Add the price: "+price,
			"Include an attractive Spanish call-to-action",
			"Use professional Instagram ad design",
			"Modern, eye-catching layout",
			"High quality and visually appealing",
			"Square format (1:1 ratio)",
			"All text must be in perfect Spanish",
		)
	case in.ImageDescription != "":
		sb.WriteString(fmt.Sprintf("\nProduct details: %s\n", utils.TruncateRunes(in.ImageDescription, bakedDescribedLimit)))
		sb.WriteString(fmt.Sprintf("Price: %s\n\n", price))
		writeRequirements(&sb, "Design Requirements:",
			"Show the exact product as described above",
			"Stylish gradient background that complements the product",
			"Include Spanish advertising text on the image",
			"Add the price: "+price,
			"Include an attractive Spanish call-to-action",
			"Professional Instagram ad design with modern typography",
			"High quality and visually appealing",
			"Square format (1:1 ratio)",
			"All text must be in perfect Spanish",
		)
	default:
		sb.WriteString(fmt.Sprintf("Price: %s\n\n", price))
		writeRequirements(&sb, "Requirements:",
			"Professional product photography with stylish background",
			"Include Spanish advertising text on the image",
			"Add the price: "+price,
			"Include an attractive Spanish call-to-action",
			"Use professional Instagram ad design",
			"Modern, eye-catching layout",
			"High quality and visually appealing",
			"Square format (1:1 ratio)",
			"All text must be in perfect Spanish",
		)
	}
	return strings.TrimSpace(sb.String())
}

// ComposeFallback はテキスト描画を要求しない商品写真のプロンプトを返します。
// テキストは後段のオーバーレイで合成されます。
func (c *Composer) ComposeFallback(in Input) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Professional studio photograph of %s.\n\n", in.Product.Title))
	if in.ImageDescription != "" {
		sb.WriteString(fmt.Sprintf("Product details: %s\n\n", utils.TruncateRunes(in.ImageDescription, fallbackDetailsLimit)))
	}

	background := in.BackgroundStyle
	if background == "" {
		background = defaultFallbackBackground
	}
	writeRequirements(&sb, "Requirements:",
		"Show the exact product as described",
		background,
		"Product prominently featured and well-lit",
		"Professional studio lighting with soft shadows",
		"High quality product photography",
		"Square format (1:1 ratio)",
		"Instagram-ready composition",
		"Clean, professional look suitable for advertising",
		"No text or watermarks on the image (text will be added separately)",
	)
	return strings.TrimSpace(sb.String())
}

func writeRequirements(sb *strings.Builder, heading string, items ...string) {
	sb.WriteString(heading)
	sb.WriteString("\n")
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
}
