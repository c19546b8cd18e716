package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thumbforge/internal/utils/platformerrors"
)

func TestHuggingFaceGenerate(t *testing.T) {
	var captured hfRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/black-forest-labs/FLUX.1-dev", r.URL.Path)
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("fake-png-bytes"))
	}))
	defer srv.Close()

	c := NewHuggingFaceClient(srv.URL, 5*time.Second, zerolog.Nop())
	img, err := c.Generate(context.Background(), "hf_test", "black-forest-labs/FLUX.1-dev", "a red fox")
	require.NoError(t, err)

	assert.Equal(t, []byte("fake-png-bytes"), img.Data)
	assert.Equal(t, "image/png", img.MIMEType)
	assert.Equal(t, "a red fox", captured.Inputs)
	assert.Equal(t, 1024, captured.Parameters.Width)
	assert.Equal(t, 576, captured.Parameters.Height)
	assert.Equal(t, 30, captured.Parameters.NumInferenceSteps)
	assert.Equal(t, 7.5, captured.Parameters.GuidanceScale)
}

func TestHuggingFaceGenerateColdModelIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Model is currently loading"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHuggingFaceClient(srv.URL, 5*time.Second, zerolog.Nop())
	_, err := c.Generate(context.Background(), "hf_test", "some/model", "prompt")
	require.Error(t, err)

	perr := platformerrors.GetPlatformError(err)
	require.NotNil(t, perr)
	assert.Equal(t, platformerrors.ErrorTypeModelWarmingUp, perr.Type)
	assert.True(t, perr.IsRetryable())
}

func TestHuggingFaceGenerateRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewHuggingFaceClient(srv.URL, 5*time.Second, zerolog.Nop())
	_, err := c.Generate(context.Background(), "hf_test", "some/model", "prompt")
	require.Error(t, err)

	perr := platformerrors.GetPlatformError(err)
	require.NotNil(t, perr)
	assert.Equal(t, platformerrors.ErrorTypeRateLimited, perr.Type)
	assert.True(t, perr.IsRetryable())
}

func TestHuggingFaceGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad prompt", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewHuggingFaceClient(srv.URL, 5*time.Second, zerolog.Nop())
	_, err := c.Generate(context.Background(), "hf_test", "some/model", "prompt")
	require.Error(t, err)

	perr := platformerrors.GetPlatformError(err)
	require.NotNil(t, perr)
	assert.Equal(t, platformerrors.ErrorTypeExternal, perr.Type)
	assert.False(t, perr.IsRetryable())
	assert.Contains(t, perr.Message, "400")
}

func TestHuggingFaceGenerateMissingToken(t *testing.T) {
	c := NewHuggingFaceClient("http://unused", 5*time.Second, zerolog.Nop())
	_, err := c.Generate(context.Background(), "", "some/model", "prompt")
	require.Error(t, err)

	perr := platformerrors.GetPlatformError(err)
	require.NotNil(t, perr)
	assert.Equal(t, platformerrors.ErrorTypeValidation, perr.Type)
}
