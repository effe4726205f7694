package builder

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

type fakeHTTP struct{}

func (fakeHTTP) FetchBytes(_ context.Context, _ string) ([]byte, error) {
	return nil, nil
}

type fakeAI struct{}

func (fakeAI) GenerateWithParts(_ context.Context, _ string, _ []*genai.Part, _ gemini.GenerateOptions) (*gemini.Response, error) {
	return &gemini.Response{}, nil
}

type fakeBackend struct{}

func (fakeBackend) GenerateContent(_ context.Context, _ string, _ []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return &genai.GenerateContentResponse{}, nil
}
