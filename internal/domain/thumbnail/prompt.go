package thumbnail

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// qualityClause is structural: it is appended to every final prompt
// regardless of enhancement outcome.
const qualityClause = " Create this as a 16:9 aspect ratio image, high quality, vibrant colors, professional thumbnail style."

// BuildBasePrompt composes the base generation prompt from title and
// style. StyleDefault appends no style clause.
func BuildBasePrompt(title, style string) string {
	prompt := fmt.Sprintf("Create a thumbnail for a video titled %q.", title)
	if style != StyleDefault {
		prompt += fmt.Sprintf(" The visual style should be: %s.", style)
	}
	return prompt
}

// Composer builds the final generation prompt. Enhancement and reference
// analysis are best-effort refinements: every failure inside Compose
// degrades to a usable prompt and is logged, never surfaced.
type Composer struct {
	gen Generator
	log zerolog.Logger
}

func NewComposer(gen Generator, log zerolog.Logger) *Composer {
	return &Composer{
		gen: gen,
		log: log.With().Str("component", "prompt-composer").Logger(),
	}
}

// Compose produces the final prompt for a generation attempt. The
// analyzeReference flag is set when a reference image is present but the
// active variant cannot edit pixels, so the reference contributes through
// a textual description instead.
func (c *Composer) Compose(ctx context.Context, creds CredentialSet, req GenerateRequest, title string) string {
	prompt := BuildBasePrompt(title, req.Style)

	if req.Enhance {
		enhanced, err := c.gen.EnhancePrompt(ctx, creds, title, req.Style)
		if err != nil {
			c.log.Warn().Err(err).Msg("prompt enhancement failed, falling back to base prompt")
		} else if strings.TrimSpace(enhanced) != "" {
			prompt = strings.TrimSpace(enhanced)
		}
	}

	prompt += qualityClause

	if req.Reference != nil && !c.gen.SupportsImageEditing() {
		analysis, err := c.gen.AnalyzeImage(ctx, creds, req.Reference, title)
		if err != nil {
			c.log.Warn().Err(err).Msg("reference image analysis failed, keeping prompt unchanged")
		} else if strings.TrimSpace(analysis) != "" {
			prompt = fmt.Sprintf(
				"Based on this reference image analysis: %s\n\nCreate a thumbnail that incorporates these visual elements while focusing on: %s",
				strings.TrimSpace(analysis), prompt)
		}
	}

	return prompt
}
