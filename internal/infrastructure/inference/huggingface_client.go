package inference

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"resty.dev/v3"

	domain "thumbforge/internal/domain/thumbnail"
	"thumbforge/internal/utils/platformerrors"
)

// hfRequest is the request format for the Hugging Face inference API.
type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
}

// hfParameters pins the output to a 16:9 frame.
type hfParameters struct {
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	NumInferenceSteps int     `json:"num_inference_steps"`
	GuidanceScale     float64 `json:"guidance_scale"`
}

// HuggingFaceClient calls the Hugging Face hosted inference API for image
// synthesis. A cold model answers 503 until its weights are loaded; that
// condition is surfaced as a retryable error, never retried here.
type HuggingFaceClient struct {
	client  *resty.Client
	baseURL string
	log     zerolog.Logger
}

// NewHuggingFaceClient creates a client against the given API base URL.
func NewHuggingFaceClient(baseURL string, timeout time.Duration, log zerolog.Logger) *HuggingFaceClient {
	if timeout <= 0 {
		timeout = 120 * time.Second // image synthesis is slow, default 2 minutes
	}
	client := resty.New()
	client.SetTimeout(timeout)
	return &HuggingFaceClient{
		client:  client,
		baseURL: baseURL,
		log:     log.With().Str("component", "huggingface-client").Logger(),
	}
}

// Generate synthesizes one image from the prompt using the given hosted
// model. The response body is the raw encoded image.
func (c *HuggingFaceClient) Generate(ctx context.Context, token, model, prompt string) (*domain.Image, error) {
	if token == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeValidation,
			"Hugging Face API token is not configured",
			nil, "huggingface-missing-token")
	}

	endpoint := fmt.Sprintf("%s/models/%s", c.baseURL, model)
	body := hfRequest{
		Inputs: prompt,
		Parameters: hfParameters{
			Width:             1024,
			Height:            576,
			NumInferenceSteps: 30,
			GuidanceScale:     7.5,
		},
	}

	c.log.Debug().
		Str("endpoint", endpoint).
		Str("model", model).
		Msg("calling Hugging Face inference API")

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(endpoint)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("Hugging Face call failed: %v", err),
			nil, "huggingface-call-failed")
	}

	respBytes := resp.Bytes()
	switch {
	case resp.StatusCode() == 503:
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeModelWarmingUp,
			fmt.Sprintf("model %s is starting up; this can take 1-2 minutes for the first request, please try again shortly", model),
			nil, "huggingface-model-loading")
	case resp.StatusCode() == 429:
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeRateLimited,
			"rate limit exceeded, please wait a moment before trying again",
			nil, "huggingface-rate-limited")
	case resp.StatusCode() >= 400:
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("Hugging Face API error (%d): %s", resp.StatusCode(), string(respBytes)),
			nil, "huggingface-http-error")
	}

	if len(respBytes) == 0 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"Hugging Face returned an empty response body",
			nil, "huggingface-empty-body")
	}

	mime := resp.Header().Get("Content-Type")
	if mime == "" {
		mime = "image/jpeg"
	}
	return &domain.Image{Data: respBytes, MIMEType: mime}, nil
}
