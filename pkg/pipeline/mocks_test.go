package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"google.golang.org/genai"

	"github.com/shouni/gemini-ad-kit/pkg/adapters"
	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/overlay"
)

// --- Mocks ---

// fakeLoader は URL ごとに用意したデータを返し、無いものは読み飛ばすのだ。
type fakeLoader struct {
	images    map[string][]byte
	requested []string
}

func (f *fakeLoader) LoadAll(ctx context.Context, urls []string) []adapters.Reference {
	f.requested = append(f.requested, urls...)
	var refs []adapters.Reference
	for _, u := range urls {
		if data, ok := f.images[u]; ok {
			refs = append(refs, adapters.Reference{URL: u, Data: data})
		}
	}
	return refs
}

type fakeDescriber struct {
	text  string
	calls int
}

func (f *fakeDescriber) Describe(ctx context.Context, refs []adapters.Reference) string {
	f.calls++
	return f.text
}

// spyRenderer は本物の Renderer に委譲しつつ受け取った商品を記録するのだ。
type spyRenderer struct {
	inner    *overlay.Renderer
	products []domain.Product
}

func (s *spyRenderer) Render(data []byte, p domain.Product) []byte {
	s.products = append(s.products, p)
	return s.inner.Render(data, p)
}

type backendCall struct {
	Model  string
	Prompt string
}

// mockBackend は generator.Backend を実装するのだ。
type mockBackend struct {
	mu      sync.Mutex
	calls   []backendCall
	handler func(call backendCall) (*genai.GenerateContentResponse, error)
}

func (m *mockBackend) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	call := backendCall{Model: model, Prompt: contents[0].Parts[0].Text}
	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()
	return m.handler(call)
}

// --- Fixtures ---

func pngImage(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func imageResponse(data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "generated"},
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}},
			}},
		}},
	}
}
