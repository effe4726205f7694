package utils

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// TruncateRunes は文字列を最大 n 文字（rune 単位）に切り詰めます。
// マルチバイト文字の途中で切れることはありません。
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// TruncateWithEllipsis は n 文字を超える場合に末尾を "..." に置き換えて n 文字に収めます。
func TruncateWithEllipsis(s string, n int) string {
	const ellipsis = "..."
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= len(ellipsis) {
		return TruncateRunes(s, n)
	}
	return TruncateRunes(s, n-len(ellipsis)) + ellipsis
}

// AdFilename は生成時刻から広告画像の保存ファイル名を作ります。
func AdFilename(t time.Time) string {
	return fmt.Sprintf("instagram_ad_%d.jpg", t.Unix())
}
