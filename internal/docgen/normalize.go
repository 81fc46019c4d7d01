package docgen

import (
	"strings"
)

// Markdown fence markers the AI wraps JSON replies in.
const (
	jsonFence = "```json"
	bareFence = "```"
)

// NormalizeResponse strips Markdown code fencing from an AI reply so the
// remainder can be fed to the JSON parser. Three cases, first match wins:
//
//  1. A "```json"-labeled fence: return the content strictly between that
//     opening fence and the next fence marker.
//  2. Any fence markers at all: return the content between the first pair.
//  3. No fencing: return the text unmodified.
//
// The result is whitespace-trimmed. Normalization never fails; feeding it
// garbage just returns the garbage for the parser to reject.
func NormalizeResponse(raw string) string {
	if idx := strings.Index(raw, jsonFence); idx >= 0 {
		inner := raw[idx+len(jsonFence):]
		if end := strings.Index(inner, bareFence); end >= 0 {
			inner = inner[:end]
		}
		return strings.TrimSpace(inner)
	}

	if idx := strings.Index(raw, bareFence); idx >= 0 {
		inner := raw[idx+len(bareFence):]
		if end := strings.Index(inner, bareFence); end >= 0 {
			inner = inner[:end]
		}
		return strings.TrimSpace(inner)
	}

	return strings.TrimSpace(raw)
}
