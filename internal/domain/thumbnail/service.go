package thumbnail

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"thumbforge/internal/config"
	"thumbforge/internal/infrastructure/metrics"
	"thumbforge/internal/utils/dataurl"
	"thumbforge/internal/utils/platformerrors"
	"thumbforge/utils/thumbid"
)

// Image is an encoded image returned by a generator backend.
type Image struct {
	Data     []byte
	MIMEType string
}

// Generator is the capability contract both backend variants implement.
// EnhancePrompt and AnalyzeImage are soft-fail from the caller's
// perspective; GenerateImage and EditImage return typed errors that
// distinguish retryable upstream conditions, and must never retry
// automatically since a retry spends credit or quota.
type Generator interface {
	Name() string
	SupportsImageEditing() bool
	Catalog() []ModelOption
	EnhancePrompt(ctx context.Context, creds CredentialSet, title, style string) (string, error)
	AnalyzeImage(ctx context.Context, creds CredentialSet, ref *ReferenceImage, title string) (string, error)
	GenerateImage(ctx context.Context, creds CredentialSet, prompt, model string) (*Image, error)
	EditImage(ctx context.Context, creds CredentialSet, ref *ReferenceImage, prompt string) (*Image, error)
}

// Ledger defines the persistence operations needed by the service. Reads
// fail soft: malformed stored state yields defaults, never errors.
type Ledger interface {
	LoadHistory(ctx context.Context) []GenerationRecord
	GetRecord(ctx context.Context, id string) (*GenerationRecord, error)
	LoadCredits(ctx context.Context) int
	SetCredits(ctx context.Context, credits int) error
	LoadCredential(ctx context.Context) CredentialSet
	SaveCredential(ctx context.Context, creds CredentialSet) error
	ClearCredential(ctx context.Context) error
	// Commit appends the record to history (truncated to HistoryLimit)
	// and, when spendCredit is set, decrements the credit balance. Both
	// mutations happen in one transaction or not at all.
	Commit(ctx context.Context, record GenerationRecord, spendCredit bool) error
}

// Service orchestrates thumbnail generation: eligibility, prompt
// composition, synthesis and the ledger commit.
type Service struct {
	cfg      *config.Config
	ledger   Ledger
	gen      Generator
	composer *Composer
	fallback CredentialSet
	log      zerolog.Logger
}

func NewService(cfg *config.Config, ledger Ledger, gen Generator, log zerolog.Logger) *Service {
	fallback := CredentialSet{
		APIKey:     cfg.GeminiAPIKey,
		ImageToken: cfg.HuggingFaceToken,
	}
	if !cfg.IsGeminiBackend() {
		fallback.APIKey = cfg.GroqAPIKey
	}
	return &Service{
		cfg:      cfg,
		ledger:   ledger,
		gen:      gen,
		composer: NewComposer(gen, log),
		fallback: fallback,
		log:      log.With().Str("component", "thumbnail-service").Logger(),
	}
}

// Generate runs one generation attempt end to end. On any failure the
// ledger is left exactly as it was: credit is only spent and history only
// written after the backend returned an image.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	started := time.Now()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"title must not be empty",
			nil, "0f4f2f6e-9a71-4d0b-8a3c-5b1e6d2c7a90")
	}

	if req.Style == "" {
		req.Style = StyleDefault
	}
	if !IsValidStyle(req.Style) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"unknown style "+req.Style,
			nil, "6c3b9d85-2e47-4f1a-b6d0-8e5a4c2f1b38")
	}

	model, err := s.resolveModel(ctx, req.Model)
	if err != nil {
		return nil, err
	}

	credits := s.ledger.LoadCredits(ctx)
	user := s.ledger.LoadCredential(ctx)
	elig := ResolveEligibility(user, s.fallback, credits)
	if elig.Blocked {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeCreditsBlocked,
			"free credits exhausted; add your own API key to continue",
			nil, "b2a7e913-5c06-4d8f-9e21-3f4a8b6d0c57")
	}

	prompt := s.composer.Compose(ctx, elig.Effective, req, title)

	var img *Image
	if req.Reference != nil && s.gen.SupportsImageEditing() {
		img, err = s.gen.EditImage(ctx, elig.Effective, req.Reference, prompt)
	} else {
		img, err = s.gen.GenerateImage(ctx, elig.Effective, prompt, model)
	}
	if err != nil {
		metrics.RecordGeneration(s.gen.Name(), "failed", time.Since(started).Seconds())
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "image synthesis failed")
	}

	record := NewRecord(thumbid.New(), title, dataurl.Encode(img.Data, img.MIMEType), time.Now())
	if err := s.ledger.Commit(ctx, record, !elig.Unlimited); err != nil {
		metrics.RecordGeneration(s.gen.Name(), "commit_failed", time.Since(started).Seconds())
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeDatabaseError,
			"failed to persist generation",
			err, "4d8c1f2a-7b3e-4a69-8d50-e21f9c6b3a74")
	}

	remaining := credits
	if !elig.Unlimited {
		remaining = credits - 1
		metrics.FreeCreditsRemaining.Set(float64(remaining))
	}
	metrics.RecordGeneration(s.gen.Name(), "success", time.Since(started).Seconds())

	s.log.Info().
		Str("id", record.ID).
		Str("backend", s.gen.Name()).
		Bool("unlimited", elig.Unlimited).
		Int("credits_remaining", remaining).
		Msg("thumbnail generated")

	return &GenerateResult{
		Record:    record,
		Credits:   remaining,
		Unlimited: elig.Unlimited,
	}, nil
}

// History returns persisted generations, newest first.
func (s *Service) History(ctx context.Context) []GenerationRecord {
	return s.ledger.LoadHistory(ctx)
}

// Record returns one persisted generation by id.
func (s *Service) Record(ctx context.Context, id string) (*GenerationRecord, error) {
	return s.ledger.GetRecord(ctx, id)
}

// CreditStatus reports the remaining free credits and whether a user
// credential grants unlimited use.
func (s *Service) CreditStatus(ctx context.Context) (int, bool) {
	credits := s.ledger.LoadCredits(ctx)
	unlimited := s.ledger.LoadCredential(ctx).HasUserKey()
	metrics.FreeCreditsRemaining.Set(float64(credits))
	return credits, unlimited
}

// SaveCredential stores user credentials. Blank fields keep any
// previously stored value.
func (s *Service) SaveCredential(ctx context.Context, creds CredentialSet) error {
	creds.APIKey = strings.TrimSpace(creds.APIKey)
	creds.ImageToken = strings.TrimSpace(creds.ImageToken)
	if creds.APIKey == "" && creds.ImageToken == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"credential must not be empty",
			nil, "9e5d0a38-1c72-4b6f-a04d-7f3e2b8c5d16")
	}
	stored := s.ledger.LoadCredential(ctx)
	if creds.APIKey == "" {
		creds.APIKey = stored.APIKey
	}
	if creds.ImageToken == "" {
		creds.ImageToken = stored.ImageToken
	}
	if err := s.ledger.SaveCredential(ctx, creds); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeDatabaseError,
			"failed to save credential",
			err, "3a6f8e21-4d95-4c0b-b7e3-0d2c5a9f6b84")
	}
	return nil
}

// ClearCredential removes stored credentials and restores the free
// credit allotment.
func (s *Service) ClearCredential(ctx context.Context) error {
	if err := s.ledger.ClearCredential(ctx); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeDatabaseError,
			"failed to clear credential",
			err, "7b1d4c92-8a35-4e6f-90c2-e5f8a3d1b627")
	}
	metrics.FreeCreditsRemaining.Set(MaxFreeCredits)
	return nil
}

// CredentialShape reports which credential fields are stored, never the
// values themselves.
func (s *Service) CredentialShape(ctx context.Context) (hasAPIKey, hasImageToken bool) {
	stored := s.ledger.LoadCredential(ctx)
	return stored.APIKey != "", stored.ImageToken != ""
}

// Catalog exposes the active backend's model options and the style set.
func (s *Service) Catalog() ([]ModelOption, []string) {
	return s.gen.Catalog(), Styles
}

func (s *Service) resolveModel(ctx context.Context, model string) (string, error) {
	catalog := s.gen.Catalog()
	if model == "" {
		if s.cfg.IsGeminiBackend() {
			return "", nil // the gemini variant uses its fixed model pair
		}
		return DefaultGroqModel, nil
	}
	if !IsKnownModel(catalog, model) {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation,
			"unknown model "+model,
			nil, "e8d2a5f7-0b64-4c31-ad98-6c1f3e7b2d40")
	}
	return model, nil
}
