package thumbnail

import "time"

// MaxFreeCredits is the free-usage allotment granted on first run and
// restored when a user credential is removed.
const MaxFreeCredits = 5

// HistoryLimit caps the retained generation history; older records are
// evicted newest-first.
const HistoryLimit = 20

// GenerationRecord is one successful generation. Records are immutable:
// the ledger only ever prepends and truncates.
type GenerationRecord struct {
	ID string `json:"id"`
	// Prompt holds the original user title, not the expanded internal
	// prompt. History shows what the user asked for.
	Prompt    string `json:"prompt"`
	Src       string `json:"src"` // base64 data URL, displayable as-is
	CreatedAt int64  `json:"createdAt"`
}

// ReferenceImage is a request-scoped user-supplied image, used either as
// editing input or as style inspiration via analysis. Never persisted.
type ReferenceImage struct {
	Name     string
	Data     []byte
	MIMEType string
}

// CredentialSet holds user-supplied secrets. The gemini variant uses only
// APIKey; the groq variant uses APIKey for text reasoning and ImageToken
// for image synthesis.
type CredentialSet struct {
	APIKey     string
	ImageToken string
}

// HasUserKey reports whether a user text credential is present, which is
// what grants unlimited use.
func (c CredentialSet) HasUserKey() bool {
	return c.APIKey != ""
}

// GenerateRequest carries one generation attempt through the orchestrator.
type GenerateRequest struct {
	Title     string
	Style     string
	Model     string
	Enhance   bool
	Reference *ReferenceImage
}

// GenerateResult is the orchestrator's success payload.
type GenerateResult struct {
	Record    GenerationRecord
	Credits   int
	Unlimited bool
}

// NewRecord builds a GenerationRecord for a finished generation.
func NewRecord(id, title, src string, now time.Time) GenerationRecord {
	return GenerationRecord{
		ID:        id,
		Prompt:    title,
		Src:       src,
		CreatedAt: now.UnixMilli(),
	}
}
