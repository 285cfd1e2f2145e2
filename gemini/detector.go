// Package gemini detects person names with Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/nametrail"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// DefaultTimeout bounds a single detection request.
const DefaultTimeout = 60 * time.Second

// Ensure NameDetector implements nametrail.NameDetector at compile time.
var _ nametrail.NameDetector = (*NameDetector)(nil)

// NameDetector implements nametrail.NameDetector by asking Gemini for a JSON
// array of the person names mentioned in the text.
type NameDetector struct {
	client  *genai.Client
	timeout time.Duration
}

// NewNameDetector creates a new NameDetector.
func NewNameDetector(client *genai.Client) *NameDetector {
	return &NameDetector{client: client, timeout: DefaultTimeout}
}

// DetectPersonNames returns every person name Gemini finds in text.
func (d *NameDetector) DetectPersonNames(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if d.client == nil {
		return nil, nametrail.Errorf(nametrail.EINVALID, "gemini client required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	result, err := d.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildPrompt(text)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	if result == nil {
		return nil, nametrail.Errorf(nametrail.EINTERNAL, "gemini returned nil result")
	}

	return ParseNames(result.Text())
}

// BuildConfig returns the GenerateContentConfig for name detection calls.
// The response is constrained to a JSON array of strings.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a named-entity tagger. List every person name mentioned in the text, once per mention, exactly as written. Do not include organizations, places, or titles.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	}
}

// BuildPrompt wraps the page text for the model.
func BuildPrompt(text string) string {
	var sb strings.Builder
	sb.WriteString("<text>\n")
	sb.WriteString(text)
	sb.WriteString("\n</text>")
	return sb.String()
}

// ParseNames decodes the model's JSON array response, dropping blank entries.
func ParseNames(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, nametrail.Errorf(nametrail.EINTERNAL, "malformed gemini response: %v", err)
	}

	out := names[:0]
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
