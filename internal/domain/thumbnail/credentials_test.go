package thumbnail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEligibilityFallbackOnly(t *testing.T) {
	fallback := CredentialSet{APIKey: "srv-key", ImageToken: "srv-token"}

	elig := ResolveEligibility(CredentialSet{}, fallback, 3)

	assert.Equal(t, fallback, elig.Effective)
	assert.False(t, elig.Unlimited)
	assert.False(t, elig.Blocked)
}

func TestResolveEligibilityUserKeyGrantsUnlimited(t *testing.T) {
	fallback := CredentialSet{APIKey: "srv-key", ImageToken: "srv-token"}
	user := CredentialSet{APIKey: "user-key"}

	elig := ResolveEligibility(user, fallback, 0)

	assert.True(t, elig.Unlimited)
	assert.False(t, elig.Blocked)
	// User key wins; the image token falls back field-by-field.
	assert.Equal(t, "user-key", elig.Effective.APIKey)
	assert.Equal(t, "srv-token", elig.Effective.ImageToken)
}

func TestResolveEligibilityBlockedWhenExhausted(t *testing.T) {
	elig := ResolveEligibility(CredentialSet{}, CredentialSet{APIKey: "srv-key"}, 0)

	assert.True(t, elig.Blocked)
	assert.False(t, elig.Unlimited)
}

func TestResolveEligibilityImageTokenAloneIsNotUnlimited(t *testing.T) {
	user := CredentialSet{ImageToken: "user-token"}

	elig := ResolveEligibility(user, CredentialSet{APIKey: "srv-key"}, 0)

	assert.False(t, elig.Unlimited)
	assert.True(t, elig.Blocked)
	assert.Equal(t, "user-token", elig.Effective.ImageToken)
}
