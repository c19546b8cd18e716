// Package requests holds the HTTP request shapes and their conversion to
// domain types.
package requests

import (
	"fmt"

	domain "thumbforge/internal/domain/thumbnail"
	"thumbforge/internal/utils/dataurl"
)

// GenerateThumbnailRequest is the body of POST /v1/thumbnails.
type GenerateThumbnailRequest struct {
	Title   string `json:"title" binding:"required"`
	Style   string `json:"style"`
	Model   string `json:"model"`
	Enhance bool   `json:"enhance"`

	Reference *ReferenceImagePayload `json:"reference"`
}

// ReferenceImagePayload carries an optional user-supplied image as a
// base64 data URL.
type ReferenceImagePayload struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl" binding:"required"`
}

// ToDomain validates and decodes the request into the domain shape.
// maxReferenceBytes caps the decoded reference image size.
func (r *GenerateThumbnailRequest) ToDomain(maxReferenceBytes int64) (domain.GenerateRequest, error) {
	req := domain.GenerateRequest{
		Title:   r.Title,
		Style:   r.Style,
		Model:   r.Model,
		Enhance: r.Enhance,
	}

	if r.Reference == nil {
		return req, nil
	}

	data, _, err := dataurl.Decode(r.Reference.DataURL)
	if err != nil {
		return domain.GenerateRequest{}, fmt.Errorf("reference image: %w", err)
	}
	if int64(len(data)) > maxReferenceBytes {
		return domain.GenerateRequest{}, fmt.Errorf("reference image exceeds the %d byte limit", maxReferenceBytes)
	}
	// The sniffed type is authoritative; the data URL's declared type is
	// client input.
	mime, err := dataurl.ValidateImage(data)
	if err != nil {
		return domain.GenerateRequest{}, fmt.Errorf("reference image: %w", err)
	}

	req.Reference = &domain.ReferenceImage{
		Name:     r.Reference.Name,
		Data:     data,
		MIMEType: mime,
	}
	return req, nil
}

// SaveCredentialRequest is the body of PUT /v1/credentials. Blank fields
// keep their stored values.
type SaveCredentialRequest struct {
	APIKey     string `json:"apiKey"`
	ImageToken string `json:"imageToken"`
}

// ToDomain converts the request to the domain credential set.
func (r *SaveCredentialRequest) ToDomain() domain.CredentialSet {
	return domain.CredentialSet{
		APIKey:     r.APIKey,
		ImageToken: r.ImageToken,
	}
}
