// Package advisor wraps the remote generative-AI collaborator behind a
// provider interface: crop diagnosis from a photo, a multilingual farming
// chat assistant, and marketplace copywriting.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Common errors
var (
	ErrMissingGeminiKey = errors.New("GEMINI_API_KEY environment variable is required for gemini provider")
	ErrUnknownProvider  = errors.New("unknown provider type")
	ErrAnalyzeFailed    = errors.New("failed to analyze crop health")
	ErrChatFailed       = errors.New("failed to get a response from the assistant")
)

// Diagnosis is the structured result of a crop photo analysis.
type Diagnosis struct {
	IsHealthy   bool   `json:"isHealthy"`
	Disease     string `json:"disease"`
	Confidence  string `json:"confidence"`
	Description string `json:"description"`
	Remedy      string `json:"remedy"`
}

// ChatMessage is one turn of the assistant conversation. Sender is "user" or
// "ai", matching the client.
type ChatMessage struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// Language is a BCP 47 tag from the set the client offers.
type Language string

const (
	LangEnglish   Language = "en-US"
	LangHindi     Language = "hi-IN"
	LangTelugu    Language = "te-IN"
	LangMalayalam Language = "ml-IN"
)

// Name returns the language name used in prompts. Unknown tags fall back to
// English.
func (l Language) Name() string {
	switch l {
	case LangHindi:
		return "Hindi"
	case LangTelugu:
		return "Telugu"
	case LangMalayalam:
		return "Malayalam"
	default:
		return "English"
	}
}

// Provider is the interface every advisory backend must implement.
type Provider interface {
	// Name returns the provider name for logging purposes.
	Name() string

	// AnalyzeCropHealth diagnoses a base64-encoded plant photo.
	AnalyzeCropHealth(ctx context.Context, imageB64, mimeType string) (*Diagnosis, error)

	// ChatResponse answers a new message given the conversation so far, in
	// the requested language.
	ChatResponse(ctx context.Context, history []ChatMessage, message string, lang Language) (string, error)

	// GenerateProductDescription writes short marketplace copy for a product.
	GenerateProductDescription(ctx context.Context, productName string) (string, error)
}

// ProviderType identifies which advisory provider to use.
type ProviderType string

const ProviderGemini ProviderType = "gemini"

// Config holds configuration for the advisory provider.
type Config struct {
	Provider ProviderType

	GeminiKey      string
	GeminiEndpoint string
}

// DefaultGeminiEndpoint is the generativelanguage REST endpoint.
const DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com"

// LoadFromEnv loads advisor configuration from environment variables.
//
// Environment variables:
//   - ADVISOR_PROVIDER: "gemini" (default: "gemini")
//   - GEMINI_API_KEY: API key (required)
//   - GEMINI_ENDPOINT: REST endpoint override (default: production)
func LoadFromEnv() Config {
	providerStr := strings.ToLower(strings.TrimSpace(os.Getenv("ADVISOR_PROVIDER")))

	var provider ProviderType
	switch providerStr {
	case "", string(ProviderGemini):
		provider = ProviderGemini
	default:
		provider = ProviderType(providerStr)
	}

	endpoint := strings.TrimSpace(os.Getenv("GEMINI_ENDPOINT"))
	if endpoint == "" {
		endpoint = DefaultGeminiEndpoint
	}

	return Config{
		Provider:       provider,
		GeminiKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiEndpoint: endpoint,
	}
}

// providerRegistry holds registered provider constructors so new providers
// can be added without touching this file.
var providerRegistry = make(map[ProviderType]func(Config) (Provider, error))

// RegisterProvider registers a provider constructor for a given provider
// type. This should be called from init() in each provider file.
func RegisterProvider(providerType ProviderType, constructor func(Config) (Provider, error)) {
	providerRegistry[providerType] = constructor
}

// NewProvider creates a Provider based on the configuration.
func NewProvider(cfg Config) (Provider, error) {
	constructor, ok := providerRegistry[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	return constructor(cfg)
}
