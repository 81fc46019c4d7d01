package ai

import (
	"context"
)

// ModelInfo describes one model visible to the caller's credentials.
type ModelInfo struct {
	// Name is the provider's full identifier, e.g. "models/gemini-1.5-flash".
	Name string
	// SupportedMethods lists the generation capabilities the model exposes,
	// e.g. "generateContent".
	SupportedMethods []string
}

// File is an uploaded document passed to the model alongside the prompt.
type File struct {
	ContentType string
	Data        []byte
}

// ModelLister enumerates the models available to the caller's credentials.
// Kept separate from Provider so the selector can be tested against a stub.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// Provider is the minimal surface the generation pipeline needs from an AI
// backend: enumerate models, run one completion, clean up.
type Provider interface {
	ModelLister
	// Generate runs a single completion carrying the uploaded file and the
	// rendered prompt, returning the raw reply text.
	Generate(ctx context.Context, model string, file File, prompt string) (string, error)
	Close() error
}

// ProviderFactory opens a Provider for one request's credentials. The API
// key is per-session user input, so a fresh provider is dialed per
// generation and closed when the pipeline finishes.
type ProviderFactory func(ctx context.Context, apiKey string) (Provider, error)
