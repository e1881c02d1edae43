package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/code4imabari/kyukyu-annai/internal/domain/providers"
	apperrors "github.com/code4imabari/kyukyu-annai/pkg/errors"
)

const (
	defaultEndpoint    = "https://translate.google.com/translate_tts"
	defaultHTTPTimeout = 15 * time.Second

	// The public endpoint rejects long q parameters, so announcements are
	// split on "、" boundaries into chunks of at most this many runes. MP3
	// frame streams concatenate cleanly, so the chunks are joined as-is.
	maxChunkRunes = 180

	// Minimum spacing between requests to the public endpoint.
	requestInterval = 500 * time.Millisecond
)

// GoogleAdapter implements SpeechSynthesizer against the Google Translate
// text-to-speech endpoint.
type GoogleAdapter struct {
	endpoint   string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewGoogleAdapter creates a new synthesis adapter for the given language.
func NewGoogleAdapter(endpoint, language string) providers.SpeechSynthesizer {
	return NewGoogleAdapterWithOptions(endpoint, language, nil)
}

// NewGoogleAdapterWithOptions allows overriding the HTTP client (used for tests).
func NewGoogleAdapterWithOptions(endpoint, language string, httpClient *http.Client) providers.SpeechSynthesizer {
	if strings.TrimSpace(endpoint) == "" {
		endpoint = defaultEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GoogleAdapter{
		endpoint:   endpoint,
		language:   language,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(requestInterval), 1),
	}
}

// Synthesize renders text to MP3 bytes. Each chunk is requested exactly once;
// any failure surfaces to the caller with nothing persisted.
func (a *GoogleAdapter) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("text is required")
	}

	var audio []byte
	for _, chunk := range splitChunks(text, maxChunkRunes) {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		data, err := a.fetchChunk(ctx, chunk)
		if err != nil {
			return nil, err
		}
		audio = append(audio, data...)
	}

	return audio, nil
}

func (a *GoogleAdapter) fetchChunk(ctx context.Context, chunk string) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", a.language)
	params.Set("q", chunk)

	reqURL := fmt.Sprintf("%s?%s", a.endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build synthesis request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("synthesis request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExternalError(fmt.Sprintf("synthesis request returned status %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to read synthesis response", err)
	}

	return data, nil
}

// splitChunks splits on "、" and regroups pieces so each chunk stays under
// maxRunes. A single piece longer than the limit is kept whole rather than
// cut mid-word.
func splitChunks(text string, maxRunes int) []string {
	pieces := strings.Split(text, "、")

	var chunks []string
	var current string
	for _, piece := range pieces {
		candidate := piece
		if current != "" {
			candidate = current + "、" + piece
		}
		if len([]rune(candidate)) <= maxRunes || current == "" {
			current = candidate
			continue
		}
		chunks = append(chunks, current)
		current = piece
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}
