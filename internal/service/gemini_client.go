package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"app/internal/catalog"
)

const (
	geminiBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	geminiImageModel = "gemini-2.5-flash-image"
	geminiTextModel  = "gemini-3-flash-preview"
)

// ImageGenerator produces an image payload for a prompt, or fails with a
// single opaque provider error.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt, styleID string) ([]byte, error)
}

// PromptEnhancer rewrites a user prompt for better generation results.
type PromptEnhancer interface {
	EnhancePrompt(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls the Gemini generateContent endpoint for both image
// generation and prompt enhancement.
type GeminiClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewGeminiClient creates a Gemini API client.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL: geminiBaseURL,
		apiKey:  apiKey,
	}
}

type geminiPart struct {
	Text       string `json:"text,omitempty"`
	InlineData *struct {
		MimeType string `json:"mimeType"`
		Data     string `json:"data"`
	} `json:"inlineData,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// StylePrompt appends the style-specific suffix and the fixed
// quality/resolution hint to a prompt.
func StylePrompt(prompt, styleID string) string {
	style := catalog.StyleByID(styleID)
	if style != nil && style.ID != "none" {
		return fmt.Sprintf("%s, in %s style, high quality, 1920x1080", prompt, style.Label)
	}
	return prompt + ", high quality, 1920x1080"
}

// GenerateImage returns the decoded image bytes for the prompt.
func (c *GeminiClient) GenerateImage(ctx context.Context, prompt, styleID string) ([]byte, error) {
	resp, err := c.generateContent(ctx, geminiImageModel, StylePrompt(prompt, styleID))
	if err != nil {
		return nil, err
	}

	// Iterate through candidates and parts to find the image part
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("decoding image payload: %w", err)
				}
				return data, nil
			}
		}
	}
	return nil, fmt.Errorf("no image data received from Gemini")
}

// EnhancePrompt rewrites the prompt via the text model. The caller is
// expected to fall back to the original prompt on error.
func (c *GeminiClient) EnhancePrompt(ctx context.Context, prompt string) (string, error) {
	instruction := fmt.Sprintf(`You are an expert AI art prompt engineer. Rewrite the following user prompt to be more detailed, descriptive, and optimized for high-quality image generation. Add keywords about lighting, texture, composition, and mood. Keep it under 50 words. Do not add conversational text, just the prompt.

User Prompt: %q`, prompt)

	resp, err := c.generateContent(ctx, geminiTextModel, instruction)
	if err != nil {
		return "", err
	}
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", fmt.Errorf("no text received from Gemini")
}

func (c *GeminiClient) generateContent(ctx context.Context, model, text string) (*geminiResponse, error) {
	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": text}}},
		},
	}
	bodyJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp struct {
			Error struct {
				Message string `json:"message"`
				Status  string `json:"status"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
			return nil, fmt.Errorf("gemini error: %s", errorResp.Error.Message)
		}
		return nil, fmt.Errorf("gemini error: HTTP %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w", err)
	}
	return &parsed, nil
}
