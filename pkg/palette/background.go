package palette

import (
	"fmt"
	"strings"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
)

var (
	fashionKeywords     = []string{"ropa", "clothing", "fashion", "shirt", "vestido"}
	electronicsKeywords = []string{"tech", "electronic", "phone", "laptop"}
	homeKeywords        = []string{"home", "hogar", "furniture", "mueble"}
)

// SelectBackgroundStyle は商品タイトルのキーワードから背景の指示文を選びます。
// 判定はファッション、電子機器、家具の順に行い、どれにも当たらなければ汎用の背景になります。
func SelectBackgroundStyle(title string, p domain.Palette) string {
	lower := strings.ToLower(title)
	switch {
	case containsAny(lower, fashionKeywords):
		return fmt.Sprintf("Modern gradient background from %s to %s, subtle geometric patterns", p.Light.Hex(), p.Primary.Hex())
	case containsAny(lower, electronicsKeywords):
		return fmt.Sprintf("Professional studio setup with %s accent lighting and soft shadows", p.Primary.Hex())
	case containsAny(lower, homeKeywords):
		return fmt.Sprintf("Contemporary minimalist background with %s and %s color blocking", p.Primary.Hex(), p.Light.Hex())
	default:
		return fmt.Sprintf("Elegant backdrop with %s gradient over %s and subtle texture, modern lighting", p.Primary.Hex(), p.Neutral.Hex())
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
