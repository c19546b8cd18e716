package thumbid

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyOnce sync.Once
	entropy     *ulid.MonotonicEntropy
)

func newEntropy() *ulid.MonotonicEntropy {
	entropyOnce.Do(func() {
		source := rand.NewSource(time.Now().UnixNano())
		entropy = ulid.Monotonic(rand.New(source), 0)
	})
	return entropy
}

// New returns a thm_* ULID string. ULIDs are time-ordered, so record ids
// double as a creation ordering key.
func New() string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), newEntropy())
	return "thm_" + strings.ToLower(id.String())
}

// IsValid reports whether the string is a thm_* ULID.
func IsValid(value string) bool {
	if !strings.HasPrefix(value, "thm_") {
		return false
	}
	_, err := Parse(value)
	return err == nil
}

// Parse strips the thm_ prefix and returns the ULID.
func Parse(value string) (ulid.ULID, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "thm_")
	value = strings.TrimPrefix(value, "THM_")
	return ulid.Parse(value)
}
