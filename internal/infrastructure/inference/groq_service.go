// Package inference holds the provider-facing generation backends. Each
// backend implements the domain Generator contract; which one is active
// is a deploy-time choice.
package inference

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"thumbforge/internal/config"
	domain "thumbforge/internal/domain/thumbnail"
	"thumbforge/internal/utils/dataurl"
	"thumbforge/internal/utils/platformerrors"
)

// Groq models for text processing.
const (
	promptEnhancementModel = "llama-3.3-70b-versatile"
	visionAnalysisModel    = "meta-llama/llama-4-scout-17b-16e-instruct"
)

// GroqService is the two-provider backend: Groq (OpenAI-compatible API)
// for prompt enhancement and vision analysis, Hugging Face for image
// synthesis. It cannot edit pixels; a reference image contributes through
// vision analysis folded into the prompt.
type GroqService struct {
	cfg *config.Config
	hf  *HuggingFaceClient
	log zerolog.Logger
}

// NewGroqService wires the Groq text backend with its Hugging Face image
// counterpart.
func NewGroqService(cfg *config.Config, log zerolog.Logger) *GroqService {
	return &GroqService{
		cfg: cfg,
		hf:  NewHuggingFaceClient(cfg.HuggingFaceURL, cfg.ImageTimeout, log),
		log: log.With().Str("component", "groq-service").Logger(),
	}
}

func (s *GroqService) Name() string { return config.BackendGroq }

// SupportsImageEditing is false: this variant approximates a reference
// image through analysis, it never edits pixels.
func (s *GroqService) SupportsImageEditing() bool { return false }

func (s *GroqService) Catalog() []domain.ModelOption { return domain.GroqModels }

// chatClient builds a per-request client so user-supplied keys take
// effect without restarting.
func (s *GroqService) chatClient(ctx context.Context, creds domain.CredentialSet) (*openai.Client, error) {
	if creds.APIKey == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation,
			"Groq API key is not configured, please add your own key to continue",
			nil, "groq-missing-key")
	}
	clientConfig := openai.DefaultConfig(creds.APIKey)
	clientConfig.BaseURL = s.cfg.GroqBaseURL
	return openai.NewClientWithConfig(clientConfig), nil
}

// EnhancePrompt asks the text model for a click-optimized image prompt.
func (s *GroqService) EnhancePrompt(ctx context.Context, creds domain.CredentialSet, title, style string) (string, error) {
	client, err := s.chatClient(ctx, creds)
	if err != nil {
		return "", err
	}

	instruction := fmt.Sprintf(`You are an expert in video content strategy and visual design. Your task is to take a video title and generate a highly detailed, visually descriptive prompt for an AI image generator to create a thumbnail that maximizes click-through rate (CTR).

The prompt should be:
- Concise but detailed (under 200 words)
- Specify key visual elements, vibrant colors, composition, and mood
- Include specific details about text placement, character expressions, lighting
- Focus on elements that make thumbnails clickable: contrast, emotion, curiosity

Video Title: %q
Style: %q

Generate only the image generation prompt, nothing else:`, title, style)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: promptEnhancementModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: instruction},
		},
		Temperature: 0.7,
		MaxTokens:   300,
	})
	if err != nil {
		return "", fmt.Errorf("groq prompt enhancement: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq prompt enhancement: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// AnalyzeImage describes the reference image so its visual character can
// be folded into the generation prompt.
func (s *GroqService) AnalyzeImage(ctx context.Context, creds domain.CredentialSet, ref *domain.ReferenceImage, title string) (string, error) {
	client, err := s.chatClient(ctx, creds)
	if err != nil {
		return "", err
	}

	instruction := fmt.Sprintf("Analyze this image and describe its key visual elements, style, colors, composition, and mood. Then suggest how to adapt it into a compelling video thumbnail for the topic: %q. Be specific about visual elements to keep, modify, or enhance.", title)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: visionAnalysisModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: instruction},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataurl.Encode(ref.Data, ref.MIMEType),
						},
					},
				},
			},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("groq vision analysis: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("groq vision analysis: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateImage synthesizes the thumbnail through the Hugging Face
// hosted model.
func (s *GroqService) GenerateImage(ctx context.Context, creds domain.CredentialSet, prompt, model string) (*domain.Image, error) {
	return s.hf.Generate(ctx, creds.ImageToken, model, prompt)
}

// EditImage is not offered by this variant; the orchestrator routes
// reference images through AnalyzeImage instead.
func (s *GroqService) EditImage(ctx context.Context, creds domain.CredentialSet, ref *domain.ReferenceImage, prompt string) (*domain.Image, error) {
	return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeInternal,
		"the groq backend does not support image editing",
		nil, "groq-edit-unsupported")
}
