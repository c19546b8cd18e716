// Package dataurl handles the base64 data URL encoding used for inline
// image payloads, both for reference images arriving from clients and
// for generated thumbnails persisted to the ledger.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var allowedMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"image/bmp":  true,
}

// Encode wraps raw image bytes as a data URL. When declaredMIME is empty
// or not an allowed image type the content is sniffed instead.
func Encode(data []byte, declaredMIME string) string {
	mime := strings.TrimSpace(declaredMIME)
	if !allowedMIMEs[mime] {
		mime = mimetype.Detect(data).String()
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// Decode parses a base64 data URL into raw bytes plus the declared MIME type.
func Decode(value string) ([]byte, string, error) {
	if value == "" {
		return nil, "", errors.New("data url is required")
	}
	if !strings.HasPrefix(value, "data:") {
		return nil, "", errors.New("invalid data url")
	}
	parts := strings.SplitN(value, ",", 2)
	if len(parts) != 2 {
		return nil, "", errors.New("invalid data url")
	}
	meta := strings.TrimPrefix(parts[0], "data:")
	if !strings.Contains(meta, ";base64") {
		return nil, "", errors.New("data url must be base64 encoded")
	}
	mime := strings.SplitN(meta, ";", 2)[0]

	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, "", fmt.Errorf("decode data url payload: %w", err)
	}
	return data, mime, nil
}

// ValidateImage sniffs content and verifies it is an allowed image type,
// returning the detected MIME. The declared type is ignored; only the
// sniffed type counts.
func ValidateImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("image is empty")
	}
	mime := mimetype.Detect(data).String()
	if !allowedMIMEs[mime] {
		return "", fmt.Errorf("unsupported image type %s", mime)
	}
	return mime, nil
}
