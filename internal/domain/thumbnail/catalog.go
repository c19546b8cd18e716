package thumbnail

// Styles is the closed set of visual style tags. StyleDefault appends no
// style clause to the prompt.
const StyleDefault = "Default"

var Styles = []string{
	StyleDefault,
	"Photorealistic",
	"Digital Art",
	"Cartoon",
	"Minimalist",
	"Bold & Vibrant",
}

// IsValidStyle reports whether the style is one of the known tags.
func IsValidStyle(style string) bool {
	for _, s := range Styles {
		if s == style {
			return true
		}
	}
	return false
}

// ModelOption describes one selectable image model. The catalog is
// static; it is not persisted.
type ModelOption struct {
	ID                      string `json:"id"`
	Name                    string `json:"name"`
	Description             string `json:"description"`
	SupportsImageGeneration bool   `json:"supportsImageGeneration"`
	SupportsImageEditing    bool   `json:"supportsImageEditing"`
}

// GroqModels lists the Hugging Face hosted models selectable under the
// two-provider variant. None of them support pixel-level editing.
var GroqModels = []ModelOption{
	{
		ID:                      "black-forest-labs/FLUX.1-dev",
		Name:                    "FLUX.1-dev",
		Description:             "High-quality image generation with excellent prompt following",
		SupportsImageGeneration: true,
	},
	{
		ID:                      "stabilityai/stable-diffusion-xl-base-1.0",
		Name:                    "Stable Diffusion XL",
		Description:             "Popular and reliable image generation model",
		SupportsImageGeneration: true,
	},
	{
		ID:                      "playgroundai/playground-v2.5",
		Name:                    "Playground v2.5",
		Description:             "Fast and creative image generation",
		SupportsImageGeneration: true,
	},
	{
		ID:                      "runwayml/stable-diffusion-v1-5",
		Name:                    "Stable Diffusion v1.5",
		Description:             "Classic and fast model, good for simple prompts",
		SupportsImageGeneration: true,
	},
}

// GeminiModels lists the fixed model pair the single-provider variant
// uses. The model selector is meaningless under this variant; the pair is
// exposed so the catalog endpoint stays uniform.
var GeminiModels = []ModelOption{
	{
		ID:                      "imagen-4.0-generate-001",
		Name:                    "Imagen 4",
		Description:             "Google's hosted text-to-image model",
		SupportsImageGeneration: true,
	},
	{
		ID:                      "gemini-2.5-flash-image-preview",
		Name:                    "Gemini Flash Image",
		Description:             "Multimodal model used for reference-image editing",
		SupportsImageGeneration: true,
		SupportsImageEditing:    true,
	},
}

// DefaultGroqModel is used when a request omits the model id.
const DefaultGroqModel = "black-forest-labs/FLUX.1-dev"

// IsKnownModel reports whether id appears in the provided catalog.
func IsKnownModel(catalog []ModelOption, id string) bool {
	for _, m := range catalog {
		if m.ID == id {
			return true
		}
	}
	return false
}
