package extract

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used for text extraction.
const DefaultModelName = "gemini-2.5-flash"

const extractionPrompt = "You are a bank statement text extractor.\n\n" +
	"Task:\n" +
	"- Return the complete text layer of the attached PDF bank statement.\n" +
	"- Preserve the original line structure: one statement row per output line.\n" +
	"- Keep column spacing so dates, descriptions and amounts stay on the same line.\n" +
	"- Do NOT summarize, reformat, translate or annotate the content.\n" +
	"- Do NOT wrap the response in code fences or Markdown.\n" +
	"Output must be the raw text only.\n"

// GeminiExtractor extracts the PDF text layer through the Gemini API.
// It relies on ambient credentials (GOOGLE_API_KEY or application default
// credentials), same as the rest of the Google Cloud clients.
type GeminiExtractor struct {
	model string
}

// NewGeminiExtractor creates an extractor using the given model, or
// DefaultModelName when model is empty.
func NewGeminiExtractor(model string) *GeminiExtractor {
	if model == "" {
		model = DefaultModelName
	}
	return &GeminiExtractor{model: model}
}

// ExtractText sends the PDF to Gemini and returns the extracted text layer.
func (g *GeminiExtractor) ExtractText(ctx context.Context, pdfBytes []byte) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("ExtractText: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: extractionPrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: "application/pdf",
						Data:     pdfBytes,
					},
				},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("ExtractText: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("ExtractText: empty response from model")
	}

	return cleanModelText(text), nil
}

// cleanModelText strips Markdown code fences in case the model ignored the
// formatting instructions.
func cleanModelText(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}

var _ TextExtractor = (*GeminiExtractor)(nil)
