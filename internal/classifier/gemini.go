package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/shellac-studio/shellac/pkg/formatting"
)

const prompt = `Analyze this archival asset from a recording studio.
1. Classify it strictly as one of: COMMERCIAL (vinyl, tape boxes, album art), DOCUMENT (track sheets, letters, invoices), VISUAL (photos of people, studio equipment, sessions), or AUDIO (recorded media without packaging).
2. Based on the classification, extract the following details:
   - If COMMERCIAL: artist, title, catalog number.
   - If DOCUMENT: date (YYYY-MM-DD if possible), client name, personnel/engineers listed.
   - If VISUAL: descriptive tags (e.g. 'Studio A', 'Spectra Sonics Console', 'Guitar'), a short description, and a potentialSessionGuess (e.g. "Big Star 1972" or "Stax era late 60s") based on visual cues if possible.
3. Always report: a confidenceScore between 0 and 1, visualCues observed in the image, identifiedPeople if any are recognizable, and general tags.`

var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"classification": {
			Type: genai.TypeString,
			Enum: []string{"COMMERCIAL", "DOCUMENT", "VISUAL", "AUDIO"},
		},
		"commercialData": {
			Type:     genai.TypeObject,
			Nullable: genai.Ptr(true),
			Properties: map[string]*genai.Schema{
				"artist":        {Type: genai.TypeString, Nullable: genai.Ptr(true)},
				"title":         {Type: genai.TypeString, Nullable: genai.Ptr(true)},
				"catalogNumber": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
			},
		},
		"documentData": {
			Type:     genai.TypeObject,
			Nullable: genai.Ptr(true),
			Properties: map[string]*genai.Schema{
				"date":   {Type: genai.TypeString, Nullable: genai.Ptr(true)},
				"client": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
				"personnel": {
					Type:     genai.TypeArray,
					Items:    &genai.Schema{Type: genai.TypeString},
					Nullable: genai.Ptr(true),
				},
			},
		},
		"visualData": {
			Type:     genai.TypeObject,
			Nullable: genai.Ptr(true),
			Properties: map[string]*genai.Schema{
				"tags": {
					Type:     genai.TypeArray,
					Items:    &genai.Schema{Type: genai.TypeString},
					Nullable: genai.Ptr(true),
				},
				"description":           {Type: genai.TypeString, Nullable: genai.Ptr(true)},
				"potentialSessionGuess": {Type: genai.TypeString, Nullable: genai.Ptr(true)},
			},
		},
		"confidenceScore": {Type: genai.TypeNumber},
		"visualCues": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"identifiedPeople": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"tags": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"classification", "confidenceScore", "visualCues", "identifiedPeople", "tags"},
}

// Gemini is a Service backed by the Gemini API with JSON-schema
// constrained output.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewGemini creates a Gemini classifier from an API key, model name, and
// per-call timeout.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration, logger *slog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gemini{
		client:  client,
		model:   model,
		timeout: timeout,
		logger:  logger.With("system", "classifier"),
	}, nil
}

// Classify sends the artifact bytes and a classification prompt to the
// model and parses the structured response. Returns ErrTimedOut when the
// configured timeout elapses, ErrFailed for any other model or parse
// failure. No side effects on failure.
func (g *Gemini) Classify(ctx context.Context, data []byte, mimeType string) (*Result, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mimeType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema,
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(callCtx, g.model, contents, config)
	if err != nil {
		return nil, mapModelError(ctx, callCtx, err, start)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty model response", ErrFailed)
	}

	result, err := formatting.Parse[Result](text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailed, err)
	}

	result.Normalize()

	g.logger.Info("artifact classified",
		"classification", result.Classification,
		"confidence", result.ConfidenceScore,
		"duration", time.Since(start),
	)

	return &result, nil
}

// mapModelError translates a GenerateContent failure into the error
// taxonomy. Only an elapsed call deadline counts as a timeout; parent
// cancellation (client disconnect) and everything else map to ErrFailed.
func mapModelError(ctx, callCtx context.Context, err error, start time.Time) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%w: %w", ErrFailed, ctx.Err())
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: after %v", ErrTimedOut, time.Since(start))
	}
	return fmt.Errorf("%w: %w", ErrFailed, err)
}
