package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// geminiProvider implements Provider on the official Gemini SDK.
type geminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider dials the Gemini API with the caller's key. The caller
// owns the returned provider and must Close it.
func NewGeminiProvider(ctx context.Context, apiKey string) (Provider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &geminiProvider{client: client}, nil
}

// ListModels enumerates every model the key can see, with its supported
// generation methods. Errors propagate; deciding what to do about them is
// the selector's job.
func (p *geminiProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo
	it := p.client.ListModels(ctx)
	for {
		m, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		models = append(models, ModelInfo{
			Name:             m.Name,
			SupportedMethods: m.SupportedGenerationMethods,
		})
	}
	return models, nil
}

// Generate issues the single completion request: file bytes first, prompt
// second, mirroring how the model is expected to read them.
func (p *geminiProvider) Generate(ctx context.Context, model string, file File, prompt string) (string, error) {
	// The SDK wants the bare identifier, not the "models/" resource name.
	gm := p.client.GenerativeModel(strings.TrimPrefix(model, "models/"))

	resp, err := gm.GenerateContent(ctx,
		genai.Blob{MIMEType: file.ContentType, Data: file.Data},
		genai.Text(prompt),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("model returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func (p *geminiProvider) Close() error {
	return p.client.Close()
}
