package thumbnail

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestBuildBasePrompt(t *testing.T) {
	prompt := BuildBasePrompt("Go in 100 Seconds", "Cartoon")
	assert.Equal(t, `Create a thumbnail for a video titled "Go in 100 Seconds". The visual style should be: Cartoon.`, prompt)
}

func TestBuildBasePromptDefaultStyleOmitsClause(t *testing.T) {
	prompt := BuildBasePrompt("Go in 100 Seconds", StyleDefault)
	assert.Equal(t, `Create a thumbnail for a video titled "Go in 100 Seconds".`, prompt)
	assert.NotContains(t, prompt, "visual style")
}

func TestComposeWithoutEnhancement(t *testing.T) {
	gen := &fakeGenerator{}
	c := NewComposer(gen, zerolog.Nop())

	prompt := c.Compose(context.Background(), CredentialSet{}, GenerateRequest{Style: StyleDefault}, "My Title")

	assert.True(t, strings.HasPrefix(prompt, `Create a thumbnail for a video titled "My Title".`))
	assert.True(t, strings.HasSuffix(prompt, qualityClause))
	assert.Zero(t, gen.enhanceCalls)
}

func TestComposeEnhancementReplacesBasePrompt(t *testing.T) {
	gen := &fakeGenerator{enhanced: "A dramatic neon-lit gopher"}
	c := NewComposer(gen, zerolog.Nop())

	prompt := c.Compose(context.Background(), CredentialSet{}, GenerateRequest{Style: StyleDefault, Enhance: true}, "My Title")

	assert.Equal(t, "A dramatic neon-lit gopher"+qualityClause, prompt)
}

func TestComposeEnhancementFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{enhanceErr: errors.New("upstream down")}
	c := NewComposer(gen, zerolog.Nop())

	prompt := c.Compose(context.Background(), CredentialSet{}, GenerateRequest{Style: StyleDefault, Enhance: true}, "My Title")

	assert.Equal(t, BuildBasePrompt("My Title", StyleDefault)+qualityClause, prompt)
}

func TestComposeBlankEnhancementFallsBack(t *testing.T) {
	gen := &fakeGenerator{enhanced: "   \n"}
	c := NewComposer(gen, zerolog.Nop())

	prompt := c.Compose(context.Background(), CredentialSet{}, GenerateRequest{Style: StyleDefault, Enhance: true}, "My Title")

	assert.Equal(t, BuildBasePrompt("My Title", StyleDefault)+qualityClause, prompt)
}

func TestComposeAnalyzesReferenceWhenEditingUnavailable(t *testing.T) {
	gen := &fakeGenerator{analysis: "warm colors, centered subject"}
	c := NewComposer(gen, zerolog.Nop())
	ref := &ReferenceImage{Name: "ref.png", Data: []byte{1}, MIMEType: "image/png"}

	prompt := c.Compose(context.Background(), CredentialSet{}, GenerateRequest{Style: StyleDefault, Reference: ref}, "My Title")

	assert.True(t, strings.HasPrefix(prompt, "Based on this reference image analysis: warm colors, centered subject"))
	assert.Contains(t, prompt, "while focusing on: "+BuildBasePrompt("My Title", StyleDefault)+qualityClause)
	assert.Equal(t, 1, gen.analyzeCalls)
}

func TestComposeSkipsAnalysisWhenBackendEdits(t *testing.T) {
	gen := &fakeGenerator{supportsEditing: true, analysis: "unused"}
	c := NewComposer(gen, zerolog.Nop())
	ref := &ReferenceImage{Name: "ref.png", Data: []byte{1}, MIMEType: "image/png"}

	prompt := c.Compose(context.Background(), CredentialSet{}, GenerateRequest{Style: StyleDefault, Reference: ref}, "My Title")

	assert.Equal(t, BuildBasePrompt("My Title", StyleDefault)+qualityClause, prompt)
	assert.Zero(t, gen.analyzeCalls)
}

func TestComposeAnalysisFailureKeepsPrompt(t *testing.T) {
	gen := &fakeGenerator{analyzeErr: errors.New("vision down")}
	c := NewComposer(gen, zerolog.Nop())
	ref := &ReferenceImage{Name: "ref.png", Data: []byte{1}, MIMEType: "image/png"}

	prompt := c.Compose(context.Background(), CredentialSet{}, GenerateRequest{Style: StyleDefault, Reference: ref}, "My Title")

	assert.Equal(t, BuildBasePrompt("My Title", StyleDefault)+qualityClause, prompt)
}
