package cmd

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/pipeline"
)

// memoryIO はパスごとの内容をメモリに保持する入出力なのだ。
type memoryIO struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemoryIO(files map[string]string) *memoryIO {
	m := &memoryIO{files: map[string][]byte{}}
	for k, v := range files {
		m.files[k] = []byte(v)
	}
	return m
}

func (m *memoryIO) Open(_ context.Context, path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryIO) Write(_ context.Context, path string, r io.Reader, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	return nil
}

func (m *memoryIO) paths(prefix string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for k := range m.files {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

// fakeAdGenerator はタイトルに応じて成功・失敗を返すのだ。
type fakeAdGenerator struct {
	mu       sync.Mutex
	requests []pipeline.Request
	concepts int
	failFor  string
}

func (f *fakeAdGenerator) Concept(_ context.Context, _ domain.Product) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.concepts++
	return "concepto", nil
}

func (f *fakeAdGenerator) Generate(_ context.Context, req pipeline.Request) (*domain.RenderedAd, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if req.Product.Title == f.failFor {
		return nil, fmt.Errorf("%w: boom", pipeline.ErrGenerationFailed)
	}
	return &domain.RenderedAd{
		Data:     []byte{0xFF, 0xD8, 0xFF},
		MimeType: "image/jpeg",
		Filename: "instagram_ad_1.jpg",
	}, nil
}

func pngBytes(c color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
