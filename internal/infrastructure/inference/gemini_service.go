package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"thumbforge/internal/config"
	domain "thumbforge/internal/domain/thumbnail"
	"thumbforge/internal/utils/platformerrors"
)

// Gemini model assignments. The variant uses a fixed pair: Imagen for
// text-to-image, the flash image model for reference editing.
const (
	geminiEnhanceModel = "gemini-2.5-flash"
	geminiEditModel    = "gemini-2.5-flash-image-preview"
	imagenModel        = "imagen-4.0-generate-001"
)

// GeminiService is the single-provider backend: one Google API key covers
// prompt enhancement, image synthesis and true pixel-level editing of a
// reference image.
type GeminiService struct {
	cfg *config.Config
	log zerolog.Logger
}

func NewGeminiService(cfg *config.Config, log zerolog.Logger) *GeminiService {
	return &GeminiService{
		cfg: cfg,
		log: log.With().Str("component", "gemini-service").Logger(),
	}
}

func (s *GeminiService) Name() string { return config.BackendGemini }

// SupportsImageEditing is true: a reference image is edited directly
// instead of being approximated through analysis.
func (s *GeminiService) SupportsImageEditing() bool { return true }

func (s *GeminiService) Catalog() []domain.ModelOption { return domain.GeminiModels }

// client builds a per-request client so user-supplied keys take effect
// without restarting.
func (s *GeminiService) client(ctx context.Context, creds domain.CredentialSet) (*genai.Client, error) {
	if creds.APIKey == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation,
			"API key is not configured, please add your own key to continue",
			nil, "gemini-missing-key")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  creds.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return client, nil
}

// EnhancePrompt asks the flash model for a click-optimized image prompt.
func (s *GeminiService) EnhancePrompt(ctx context.Context, creds domain.CredentialSet, title, style string) (string, error) {
	client, err := s.client(ctx, creds)
	if err != nil {
		return "", err
	}

	instruction := fmt.Sprintf(`You are an expert in video content strategy. Your task is to take a video title and generate a visually descriptive, high-impact prompt for an AI image generator to create a thumbnail that maximizes click-through rate (CTR). The prompt should be concise, under 150 words, and specify key elements, vibrant colors, composition, and overall mood. Make it compelling and clickable.

Video Title: %q
Style: %q`, title, style)

	resp, err := client.Models.GenerateContent(ctx, geminiEnhanceModel, genai.Text(instruction), nil)
	if err != nil {
		return "", fmt.Errorf("gemini prompt enhancement: %w", err)
	}
	return extractText(resp), nil
}

// AnalyzeImage describes the reference image. The orchestrator only
// needs this when editing is unavailable, but the capability is kept
// uniform across backends.
func (s *GeminiService) AnalyzeImage(ctx context.Context, creds domain.CredentialSet, ref *domain.ReferenceImage, title string) (string, error) {
	client, err := s.client(ctx, creds)
	if err != nil {
		return "", err
	}

	instruction := fmt.Sprintf("Analyze this image and describe its key visual elements, style, colors, composition, and mood. Then suggest how to adapt it into a compelling video thumbnail for the topic: %q. Be specific about visual elements to keep, modify, or enhance.", title)
	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: ref.MIMEType, Data: ref.Data}},
		genai.NewPartFromText(instruction),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := client.Models.GenerateContent(ctx, geminiEnhanceModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini image analysis: %w", err)
	}
	return extractText(resp), nil
}

// GenerateImage synthesizes a new thumbnail through Imagen. The model
// parameter is ignored: this variant always uses its fixed pair.
func (s *GeminiService) GenerateImage(ctx context.Context, creds domain.CredentialSet, prompt, model string) (*domain.Image, error) {
	client, err := s.client(ctx, creds)
	if err != nil {
		return nil, err
	}

	resp, err := client.Models.GenerateImages(ctx, imagenModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: "image/jpeg",
		AspectRatio:    "16:9",
	})
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("imagen generation failed: %v", err),
			nil, "gemini-imagen-failed")
	}
	if len(resp.GeneratedImages) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"the model did not return any images",
			nil, "gemini-imagen-empty")
	}
	generated := resp.GeneratedImages[0]
	if generated.RAIFilteredReason != "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("image was filtered by the safety system: %s", generated.RAIFilteredReason),
			nil, "gemini-imagen-filtered")
	}
	if generated.Image == nil || len(generated.Image.ImageBytes) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"generated image has no image data",
			nil, "gemini-imagen-no-data")
	}
	return &domain.Image{Data: generated.Image.ImageBytes, MIMEType: "image/jpeg"}, nil
}

// EditImage turns the reference image into the thumbnail through the
// flash image model. The first inline-data part of the response wins;
// text parts are commentary.
func (s *GeminiService) EditImage(ctx context.Context, creds domain.CredentialSet, ref *domain.ReferenceImage, prompt string) (*domain.Image, error) {
	client, err := s.client(ctx, creds)
	if err != nil {
		return nil, err
	}

	instruction := fmt.Sprintf(`Your task is to edit the provided reference image to create an eye-catching 16:9 video thumbnail based on the following instructions: %q.

Key instructions:
- **Foundation:** Use the provided image as the primary foundation. The final output should feel like an evolution of this image, not something entirely new.
- **Significant Changes:** You are empowered to make significant alterations. This includes modifying or completely changing characters, adding or removing objects, altering the background, and adjusting the overall style, mood, and color palette to perfectly match the prompt's requirements.
- **Text Integration:** If the prompt suggests text (like a video title or key concepts), integrate it into the image in a bold, readable, and stylistically appropriate font.
- **Goal:** The final image must be a high-quality, compelling thumbnail that masterfully blends the essence of the original image with the specific creative direction of the prompt.`, prompt)

	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: ref.MIMEType, Data: ref.Data}},
		genai.NewPartFromText(instruction),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := client.Models.GenerateContent(ctx, geminiEditModel, contents, &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	})
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("gemini image edit failed: %v", err),
			nil, "gemini-edit-failed")
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mime := part.InlineData.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return &domain.Image{Data: part.InlineData.Data, MIMEType: mime}, nil
			}
		}
	}
	return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeExternal,
		"the model did not return an image from the edit operation",
		nil, "gemini-edit-no-image")
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
