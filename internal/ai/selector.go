package ai

import (
	"context"
	"log"
	"strings"
)

// DefaultModel is returned when model enumeration fails outright. Provider
// availability beats strict correctness here: a stale identifier that mostly
// works is better than refusing to generate at all.
const DefaultModel = "gemini-1.5-flash"

// DefaultPreferredModels is the built-in preference order, most capable and
// fastest first. Overridable via config.
var DefaultPreferredModels = []string{"gemini-1.5-flash", "gemini-1.5-pro", "gemini-pro"}

// methodGenerateContent is the capability a model must expose to serve
// completion requests.
const methodGenerateContent = "generateContent"

// SelectModel picks the model identifier for one generation request.
//
// It enumerates the models the caller's key can actually see, keeps those
// that support content generation, and returns the first preferred
// identifier that appears as a substring of any available full name. When no
// preference matches, the first available model wins. When enumeration
// itself fails (network, auth, malformed response), it fails soft and
// returns DefaultModel; the completion call will report the real problem if
// the default is unusable too.
//
// Matching is bare substring containment: "gemini-pro" would also match
// "models/gemini-pro-vision". Suffix matching after the "models/" prefix may
// have been the intent, but substring is the compatible behavior.
func SelectModel(ctx context.Context, lister ModelLister, preferred []string) string {
	if len(preferred) == 0 {
		preferred = DefaultPreferredModels
	}

	models, err := lister.ListModels(ctx)
	if err != nil {
		log.Printf("WARN: model enumeration failed, using default %q: %v", DefaultModel, err)
		return DefaultModel
	}

	available := make([]string, 0, len(models))
	for _, m := range models {
		if supportsGeneration(m) {
			available = append(available, m.Name)
		}
	}
	if len(available) == 0 {
		log.Printf("WARN: no generation-capable models available, using default %q", DefaultModel)
		return DefaultModel
	}

	for _, want := range preferred {
		for _, name := range available {
			if strings.Contains(name, want) {
				return name
			}
		}
	}

	// Nothing preferred is available; take whatever the provider offers.
	log.Printf("WARN: no preferred model available, falling back to %q", available[0])
	return available[0]
}

func supportsGeneration(m ModelInfo) bool {
	for _, method := range m.SupportedMethods {
		if method == methodGenerateContent {
			return true
		}
	}
	return false
}
