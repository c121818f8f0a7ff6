// Package suggest wraps the external text-generation service that proposes
// mission copy from a keyword. The call is advisory: the create flow never
// waits on it, and any failure folds into a single typed error the UI can
// replace with a fallback message.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrEmptyKeyword is returned before any network call when no keyword was
// given.
var ErrEmptyKeyword = errors.New("suggest: keyword is required")

// GenerationError covers every way the round trip can fail: transport
// errors, non-success statuses, and responses missing the generated text.
type GenerationError struct {
	Status int // HTTP status, 0 when the request never completed
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("suggest: generation failed with status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("suggest: generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// persona is the fixed system-style instruction sent with every request.
const persona = "You are a friendly and curious alien mascot named Puri. " +
	"Your goal is to understand Earthlings by giving them creative daily missions. " +
	"Your tone is playful, inquisitive, and slightly quirky. " +
	"Generate a mission prompt based on the user's keyword. " +
	"The mission should be a single, engaging sentence, phrased as a request from you to the Earthlings. " +
	"The response should be in Korean."

// Client calls the generateContent endpoint of the generation service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

// New builds a client for the given endpoint. The base URL carries no
// trailing slash; the model is the path segment of the generateContent
// route.
func New(baseURL, model, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
	}
}

// Wire format of the generateContent call.
type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Suggest sends one generation request for the keyword and returns the
// suggested mission text with embedded quotation characters stripped. An
// empty keyword fails immediately with ErrEmptyKeyword; every other
// failure is a *GenerationError.
func (c *Client) Suggest(ctx context.Context, keyword string) (string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "", ErrEmptyKeyword
	}

	payload := generateRequest{
		Contents:          []content{{Parts: []part{{Text: "Keyword: " + keyword}}}},
		SystemInstruction: &content{Parts: []part{{Text: persona}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &GenerationError{Err: fmt.Errorf("encode request: %w", err)}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &GenerationError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &GenerationError{Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &GenerationError{Status: resp.StatusCode, Err: fmt.Errorf("%s", strings.TrimSpace(string(respBody)))}
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &GenerationError{Status: resp.StatusCode, Err: fmt.Errorf("parse response: %w", err)}
	}
	text := extractText(parsed)
	if text == "" {
		return "", &GenerationError{Status: resp.StatusCode, Err: errors.New("response carries no generated text")}
	}
	return stripQuotes(text), nil
}

func extractText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSpace(parts[0].Text)
}

var quoteStripper = strings.NewReplacer(`"`, "", "“", "", "”", "")

func stripQuotes(text string) string {
	return quoteStripper.Replace(text)
}
