package palette

import "github.com/shouni/gemini-ad-kit/pkg/domain"

const (
	lightOffset = 60
	darkOffset  = 40
)

// NeutralColor はすべてのパレットで共通の中立色です。
var NeutralColor = domain.RGB{R: 248, G: 249, B: 250}

// DefaultPalette は支配色が得られなかった場合のパレットです。
var DefaultPalette = domain.Palette{
	Primary:    domain.RGB{R: 0x4a, G: 0x90, B: 0xe2},
	Light:      domain.RGB{R: 0x87, G: 0xce, B: 0xeb},
	Dark:       domain.RGB{R: 0x2c, G: 0x5a, B: 0xa0},
	Complement: domain.RGB{R: 0xe2, G: 0x4a, B: 0x4a},
	Neutral:    NeutralColor,
}

// BuildPalette は先頭の支配色を基準に明暗・補色を導出します。
func BuildPalette(colors []domain.RGB) domain.Palette {
	if len(colors) == 0 {
		return DefaultPalette
	}
	primary := colors[0]
	return domain.Palette{
		Primary:    primary,
		Light:      shift(primary, lightOffset),
		Dark:       shift(primary, -darkOffset),
		Complement: domain.RGB{R: 255 - primary.R, G: 255 - primary.G, B: 255 - primary.B},
		Neutral:    NeutralColor,
	}
}

func shift(c domain.RGB, delta int) domain.RGB {
	return domain.RGB{R: clampInt(int(c.R) + delta), G: clampInt(int(c.G) + delta), B: clampInt(int(c.B) + delta)}
}

func clampInt(v int) uint8 {
	return uint8(max(0, min(255, v)))
}
