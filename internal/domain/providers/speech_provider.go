package providers

import (
	"context"
)

// SpeechSynthesizer defines the interface for text-to-speech synthesis
type SpeechSynthesizer interface {
	// Synthesize renders text to an audio stream (MP3)
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
