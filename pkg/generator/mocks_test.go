package generator

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"

	"google.golang.org/genai"
)

// --- Mocks ---

// backendCall は mockBackend が受け取った1回分の呼び出しです。
type backendCall struct {
	Model  string
	Prompt string
	Config *genai.GenerateContentConfig
}

// mockBackend はモデルごとに応答を切り替えられる Backend のモックです。
type mockBackend struct {
	mu      sync.Mutex
	calls   []backendCall
	handler func(call backendCall) (*genai.GenerateContentResponse, error)
}

func (m *mockBackend) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var prompt string
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		prompt = contents[0].Parts[0].Text
	}
	call := backendCall{Model: model, Prompt: prompt, Config: cfg}

	m.mu.Lock()
	m.calls = append(m.calls, call)
	m.mu.Unlock()

	if m.handler == nil {
		return nil, nil
	}
	return m.handler(call)
}

func (m *mockBackend) callsTo(model string) []backendCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []backendCall
	for _, c := range m.calls {
		if c.Model == model {
			out = append(out, c)
		}
	}
	return out
}

// --- Fixtures ---

func pngFixture(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{10, 120, 200, 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func imageResponse(data []byte, mimeType string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "Here is your image"},
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
			}},
		}},
	}
}

var testModels = Models{Clean: "clean-model", TextToImage: "t2i-model", Fallback: "fallback-model"}
