package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProduct(t *testing.T) {
	t.Run("説明文は上限文字数で切り詰められるのだ", func(t *testing.T) {
		long := strings.Repeat("ñ", MaxDescriptionRunes+20)
		p := NewProduct(" Silla ", "45.999", long, nil)

		assert.Equal(t, "Silla", p.Title)
		assert.Equal(t, MaxDescriptionRunes, len([]rune(p.Description)))
	})

	t.Run("価格は加工されずにそのまま保持されるのだ", func(t *testing.T) {
		p := NewProduct("Mesa", "1.234,50", "", nil)
		assert.Equal(t, "1.234,50", p.Price)

		spaced := NewProduct("Mesa", " $ 99 ", "", nil)
		assert.Equal(t, " $ 99 ", spaced.Price)
	})
}

func TestProduct_PrimaryImageURLs(t *testing.T) {
	p := NewProduct("Mesa", "10", "", []string{"https://a/1.jpg", "https://a/2.jpg"})

	t.Run("選択済みのURLがあればそれを使うのだ", func(t *testing.T) {
		got := p.PrimaryImageURLs([]string{"https://b/9.jpg"})
		assert.Equal(t, []string{"https://b/9.jpg"}, got)
	})

	t.Run("選択が無ければ先頭の商品画像だけを使うのだ", func(t *testing.T) {
		assert.Equal(t, []string{"https://a/1.jpg"}, p.PrimaryImageURLs(nil))
	})

	t.Run("画像が1枚も無ければ nil なのだ", func(t *testing.T) {
		assert.Nil(t, Product{}.PrimaryImageURLs(nil))
	})
}

func TestOutcome_Constructors(t *testing.T) {
	img := ImageOutcome([]byte{0xFF, 0xD8}, "image/jpeg", true)
	assert.Equal(t, OutcomeImage, img.Kind)
	assert.True(t, img.UsedFallback)

	none := NoImageOutcome(false)
	assert.Equal(t, OutcomeNoImage, none.Kind)
	assert.Nil(t, none.Data)

	err := errors.New("boom")
	fail := FailureOutcome(err, true)
	assert.Equal(t, OutcomeFailure, fail.Kind)
	assert.True(t, fail.Busy)
	assert.ErrorIs(t, fail.Err, err)
}

func TestRGB_Hex(t *testing.T) {
	assert.Equal(t, "#f8f9fa", RGB{248, 249, 250}.Hex())
	assert.Equal(t, "#000000", RGB{}.Hex())
	assert.Equal(t, "text_baked", ModeTextBaked.String())
}
