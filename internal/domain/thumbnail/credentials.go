package thumbnail

// Eligibility is the outcome of resolving credentials against the credit
// balance before a generation starts.
type Eligibility struct {
	// Effective holds the credentials to use for the attempt, user values
	// preferred field-by-field over deployment fallbacks.
	Effective CredentialSet
	// Unlimited is true when a user credential is present; unlimited
	// attempts never spend credits.
	Unlimited bool
	// Blocked is true when no user credential is present and the free
	// credit balance is exhausted. Blocked is a user-actionable state
	// (enter a credential), not a failure.
	Blocked bool
}

// ResolveEligibility merges the user credential set with the deployment
// fallback and decides whether the attempt may proceed.
func ResolveEligibility(user, fallback CredentialSet, credits int) Eligibility {
	effective := fallback
	if user.APIKey != "" {
		effective.APIKey = user.APIKey
	}
	if user.ImageToken != "" {
		effective.ImageToken = user.ImageToken
	}

	unlimited := user.HasUserKey()
	return Eligibility{
		Effective: effective,
		Unlimited: unlimited,
		Blocked:   !unlimited && credits <= 0,
	}
}
