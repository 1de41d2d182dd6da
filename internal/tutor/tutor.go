// Package tutor talks to an OpenAI-compatible chat completion API to back
// the conversational practice feature: free-form chat with a tutor
// persona for whatever language the user is studying.
package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vocabpool/internal/config"
)

// Message is a single chat turn in the API's wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      Message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Client is an OpenAI-compatible chat completion client.
type Client struct {
	cfg        *config.AIConfig
	httpClient *http.Client
}

// NewClient creates a new tutor client.
func NewClient(cfg *config.AIConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// IsConfigured reports whether an API key has been set.
func (c *Client) IsConfigured() bool {
	return c.cfg.APIKey != ""
}

// systemPrompt builds the tutor persona for the given target language.
// Keeping this a function of language (rather than a single hardcoded
// prompt) is what lets the same client serve any catalog language.
func systemPrompt(language string) string {
	return fmt.Sprintf(`You are a friendly and knowledgeable %s language tutor. You help students learn %s at all levels.

Your capabilities:
- Explain %s vocabulary, grammar, and sentence structures
- Provide example sentences with translations
- Correct mistakes in the student's %s and explain the corrections
- Teach cultural context behind phrases and expressions
- Practice conversations in %s with the student
- Adapt your level of %s based on the student's proficiency

Guidelines:
- When showing %s text, always include an English translation
- Use simple language for beginners, more complex for advanced learners
- Be encouraging and supportive
- If the student writes in %s, respond with both %s and English
- Keep responses concise but informative
- Use bullet points and formatting for clarity when explaining grammar

You can communicate in both English and %s. Match the language the student uses.`,
		language, language, language, language, language, language, language, language, language, language)
}

// ChatCompletion sends messages, prefixed with the tutor's system prompt
// for language, and returns the assistant's reply.
func (c *Client) ChatCompletion(ctx context.Context, language string, messages []Message) (*Message, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("tutor service is not configured (missing AI_API_KEY)")
	}

	allMessages := make([]Message, 0, len(messages)+1)
	allMessages = append(allMessages, Message{Role: "system", Content: systemPrompt(language)})
	allMessages = append(allMessages, messages...)

	reqBody := chatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    allMessages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: 0.7,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal tutor request: %w", err)
	}

	url := c.cfg.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("build tutor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tutor API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tutor response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tutor API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse tutor response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("tutor API returned no choices")
	}

	return &result.Choices[0].Message, nil
}
