package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const geminiModel = "gemini-2.5-flash"

func init() {
	RegisterProvider(ProviderGemini, func(cfg Config) (Provider, error) {
		return NewGeminiClient(cfg)
	})
}

// GeminiClient calls the generativelanguage REST API directly. No retry: a
// failed call surfaces to the user, who can retry the action.
type GeminiClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewGeminiClient(cfg Config) (*GeminiClient, error) {
	if cfg.GeminiKey == "" {
		return nil, ErrMissingGeminiKey
	}
	endpoint := cfg.GeminiEndpoint
	if endpoint == "" {
		endpoint = DefaultGeminiEndpoint
	}
	return &GeminiClient{
		apiKey:   cfg.GeminiKey,
		endpoint: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (c *GeminiClient) Name() string { return "gemini" }

// Request/response wire types for generateContent.

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// diagnosisSchema constrains the model to the structured diagnosis shape.
var diagnosisSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "isHealthy":   {"type": "BOOLEAN", "description": "Whether the plant is healthy or not."},
    "disease":     {"type": "STRING", "description": "The name of the disease or deficiency detected. If healthy, this should be 'None'."},
    "confidence":  {"type": "STRING", "description": "Confidence level of the detection (e.g., High, Medium, Low)."},
    "description": {"type": "STRING", "description": "A brief description of the detected issue."},
    "remedy":      {"type": "STRING", "description": "A detailed, actionable treatment plan or remedy for the detected issue. If healthy, provide general care tips."}
  },
  "required": ["isHealthy", "disease", "confidence", "description", "remedy"]
}`)

func (c *GeminiClient) AnalyzeCropHealth(ctx context.Context, imageB64, mimeType string) (*Diagnosis, error) {
	req := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{MimeType: mimeType, Data: imageB64}},
				{Text: "Analyze this image of a plant leaf. Identify any diseases or nutrient deficiencies. Provide a detailed analysis and a step-by-step treatment plan."},
			},
		}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   diagnosisSchema,
		},
	}

	text, err := c.generate(ctx, "analyze", req)
	if err != nil {
		return nil, fmt.Errorf("%w: the model may be unable to process this image", ErrAnalyzeFailed)
	}

	var diagnosis Diagnosis
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &diagnosis); err != nil {
		LogError(c.Name(), "analyze decode", err)
		return nil, fmt.Errorf("%w: the model may be unable to process this image", ErrAnalyzeFailed)
	}
	return &diagnosis, nil
}

func (c *GeminiClient) ChatResponse(ctx context.Context, history []ChatMessage, message string, lang Language) (string, error) {
	instruction := fmt.Sprintf("You are HarvestHub, a friendly and knowledgeable farming assistant. "+
		"Your goal is to provide clear, concise, and helpful advice to farmers. "+
		"Answer questions related to crop management, pest control, soil health, and farming techniques. "+
		"Keep your answers practical and easy to understand. "+
		"Please respond in %s, which is the user's selected language.", lang.Name())

	contents := make([]content, 0, len(history)+1)
	for _, msg := range history {
		role := "model"
		if msg.Sender == "user" {
			role = "user"
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: msg.Text}}})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: message}}})

	req := generateRequest{
		Contents:          contents,
		SystemInstruction: &content{Parts: []part{{Text: instruction}}},
	}

	text, err := c.generate(ctx, "chat", req)
	if err != nil {
		return "", ErrChatFailed
	}
	return text, nil
}

func (c *GeminiClient) GenerateProductDescription(ctx context.Context, productName string) (string, error) {
	prompt := fmt.Sprintf("Generate a short, appealing, and marketable description for a farm product. "+
		"The product is: %s. The description should be suitable for an online marketplace targeting consumers. "+
		"Focus on freshness and quality. Keep it under 200 characters.", productName)

	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	return c.generate(ctx, "describe", req)
}

// generate posts one generateContent request and returns the first
// candidate's text.
func (c *GeminiClient) generate(ctx context.Context, operation string, genReq generateRequest) (string, error) {
	body, err := json.Marshal(genReq)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.endpoint, geminiModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	LogRequest(c.Name(), operation)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		LogError(c.Name(), operation, err)
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()
	LogResponse(c.Name(), resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API returned HTTP %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
