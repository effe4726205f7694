package main

import (
	"github.com/shouni/gemini-ad-kit/cmd"
)

// main はアプリケーションの唯一のエントリーポイントなのだ！
func main() {
	cmd.Execute()
}
