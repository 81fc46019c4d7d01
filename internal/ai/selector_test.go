package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubLister fakes model enumeration for selector tests.
type stubLister struct {
	models []ModelInfo
	err    error
}

func (s *stubLister) ListModels(ctx context.Context) ([]ModelInfo, error) {
	return s.models, s.err
}

func generationModel(name string) ModelInfo {
	return ModelInfo{Name: name, SupportedMethods: []string{"generateContent"}}
}

func TestSelectModelPreferenceOrder(t *testing.T) {
	lister := &stubLister{models: []ModelInfo{
		generationModel("models/gemini-1.5-flash"),
		generationModel("models/gemini-pro"),
	}}
	preferred := []string{"gemini-1.5-flash", "gemini-1.5-pro", "gemini-pro"}

	got := SelectModel(context.Background(), lister, preferred)
	assert.Equal(t, "models/gemini-1.5-flash", got)
}

// The first preference that matches wins even when it is listed after other
// available models.
func TestSelectModelPreferenceBeatsListingOrder(t *testing.T) {
	lister := &stubLister{models: []ModelInfo{
		generationModel("models/gemini-pro"),
		generationModel("models/gemini-1.5-pro"),
	}}
	preferred := []string{"gemini-1.5-pro", "gemini-pro"}

	got := SelectModel(context.Background(), lister, preferred)
	assert.Equal(t, "models/gemini-1.5-pro", got)
}

// Models without the generateContent capability are invisible to selection.
func TestSelectModelFiltersByCapability(t *testing.T) {
	lister := &stubLister{models: []ModelInfo{
		{Name: "models/gemini-1.5-flash", SupportedMethods: []string{"embedContent"}},
		generationModel("models/gemini-pro"),
	}}
	preferred := []string{"gemini-1.5-flash", "gemini-pro"}

	got := SelectModel(context.Background(), lister, preferred)
	assert.Equal(t, "models/gemini-pro", got)
}

// When nothing preferred is available, take the first available model.
func TestSelectModelFallsBackToFirstAvailable(t *testing.T) {
	lister := &stubLister{models: []ModelInfo{
		generationModel("models/gemini-exp-1206"),
		generationModel("models/learnlm-1.5-pro"),
	}}
	preferred := []string{"gemini-1.5-flash", "gemini-pro"}

	got := SelectModel(context.Background(), lister, preferred)
	assert.Equal(t, "models/gemini-exp-1206", got)
}

// Enumeration failure fails soft to the hard-coded default instead of
// propagating the error.
func TestSelectModelEnumerationFailure(t *testing.T) {
	lister := &stubLister{err: errors.New("permission denied")}

	got := SelectModel(context.Background(), lister, []string{"gemini-1.5-flash"})
	assert.Equal(t, DefaultModel, got)
}

func TestSelectModelNoUsableModels(t *testing.T) {
	lister := &stubLister{models: []ModelInfo{
		{Name: "models/text-embedding-004", SupportedMethods: []string{"embedContent"}},
	}}

	got := SelectModel(context.Background(), lister, nil)
	assert.Equal(t, DefaultModel, got)
}

// Nil preference list uses the built-in defaults.
func TestSelectModelDefaultPreferences(t *testing.T) {
	lister := &stubLister{models: []ModelInfo{
		generationModel("models/gemini-pro"),
		generationModel("models/gemini-1.5-flash-002"),
	}}

	got := SelectModel(context.Background(), lister, nil)
	assert.Equal(t, "models/gemini-1.5-flash-002", got)
}
