package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/qyf6zs2vmg-hue/CeloraAI/internal/errors"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/models"
)

// Turn is one prior conversation turn in the service's request shape.
type Turn struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Part is one piece of a turn: text or inline binary data, never both.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData carries a base64-encoded image payload.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// TextTurn builds a plain-text turn for the request history.
func TextTurn(role models.Role, text string) Turn {
	return Turn{
		Role:  string(role),
		Parts: []Part{{Text: text}},
	}
}

// HistoryFromMessages converts a message transcript into request turns,
// text content only. Images from earlier turns are not resent.
func HistoryFromMessages(msgs []models.Message) []Turn {
	turns := make([]Turn, 0, len(msgs))
	for _, m := range msgs {
		turns = append(turns, TextTurn(m.Role, m.Content))
	}
	return turns
}

// dataURIPattern matches inline image attachments of the form
// data:image/png;base64,<payload>.
var dataURIPattern = regexp.MustCompile(`^data:(image/\w+);base64,(.+)$`)

// ParseDataURI splits a data URI into its mime type and base64 payload.
func ParseDataURI(uri string) (mimeType, data string, ok bool) {
	m := dataURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

type generateRequest struct {
	Contents         []Turn           `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

// Generate sends the prior turns plus a new user turn built from prompt
// and the optional inline image, and returns the reply text.
//
// An image whose data URI does not match the expected pattern is silently
// dropped from the request rather than failing the call. The new user turn
// always carries exactly one text part: prompt, or the fixed default when
// prompt is empty and an image is present.
func (c *Client) Generate(ctx context.Context, prompt string, history []Turn, image string) (string, error) {
	if c.apiKey == "" {
		return "", apierrors.ErrNoAPIKey
	}

	var parts []Part
	if image != "" {
		if mimeType, data, ok := ParseDataURI(image); ok {
			parts = append(parts, Part{InlineData: &InlineData{
				MimeType: mimeType,
				Data:     data,
			}})
		}
	}
	if prompt == "" && image != "" {
		prompt = models.DefaultImagePrompt
	}
	parts = append(parts, Part{Text: prompt})

	contents := make([]Turn, 0, len(history)+1)
	contents = append(contents, history...)
	contents = append(contents, Turn{Role: string(models.RoleUser), Parts: parts})

	payload, err := json.Marshal(generateRequest{
		Contents:         contents,
		GenerationConfig: generationConfig{Temperature: c.temperature},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apierrors.WrapGenerationError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apierrors.WrapGenerationError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apierrors.NewGenerationError(resp.StatusCode, endpoint, serviceErrorMessage(body))
	}

	return extractText(body), nil
}

// extractText pulls the reply text out of the response, joining multi-part
// candidates. An empty reply degrades to the fixed fallback string.
func extractText(body []byte) string {
	parts := gjson.GetBytes(body, "candidates.0.content.parts.#.text")

	var sb strings.Builder
	for _, p := range parts.Array() {
		sb.WriteString(p.String())
	}

	if sb.Len() == 0 {
		return models.FallbackReply
	}
	return sb.String()
}

// serviceErrorMessage extracts the error description from an error body,
// falling back to the raw payload.
func serviceErrorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, "error.message"); msg.Exists() {
		return msg.String()
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
