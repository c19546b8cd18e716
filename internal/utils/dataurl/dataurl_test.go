package dataurl

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
)

// Minimal valid 1x1 PNG.
var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	url := Encode(tinyPNG, "image/png")
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %s", url[:40])
	}

	data, mime, err := Decode(url)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if mime != "image/png" {
		t.Errorf("expected image/png, got %s", mime)
	}
	if !bytes.Equal(data, tinyPNG) {
		t.Error("payload bytes changed across encode/decode")
	}
}

func TestEncodeSniffsWhenDeclaredMIMEIsBogus(t *testing.T) {
	url := Encode(tinyPNG, "application/octet-stream")
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("expected sniffed image/png, got %s", url[:40])
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"not a data url",
		"data:image/png,plainpayload",
		"data:image/png;base64,%%%%",
	}
	for _, c := range cases {
		if _, _, err := Decode(c); err == nil {
			t.Errorf("expected error for %q", c)
		}
	}
}

func TestValidateImage(t *testing.T) {
	mime, err := ValidateImage(tinyPNG)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mime != "image/png" {
		t.Errorf("expected image/png, got %s", mime)
	}

	if _, err := ValidateImage([]byte("definitely text")); err == nil {
		t.Error("expected text content to be rejected")
	}
	if _, err := ValidateImage(nil); err == nil {
		t.Error("expected empty content to be rejected")
	}
}

func TestDecodeAcceptsUnpaddedMetadata(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString(tinyPNG)
	url := "data:image/png;base64," + payload
	if _, _, err := Decode(url); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
}
