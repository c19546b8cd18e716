package thumbid

import (
	"strings"
	"testing"
)

func TestNewHasPrefix(t *testing.T) {
	id := New()
	if !strings.HasPrefix(id, "thm_") {
		t.Fatalf("expected thm_ prefix, got %s", id)
	}
	if !IsValid(id) {
		t.Fatalf("generated id %s did not validate", id)
	}
}

func TestNewIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestNewIsMonotonic(t *testing.T) {
	prev := New()
	for i := 0; i < 100; i++ {
		next := New()
		if next <= prev {
			t.Fatalf("ids not increasing: %s then %s", prev, next)
		}
		prev = next
	}
}

func TestIsValidRejectsGarbage(t *testing.T) {
	cases := []string{"", "thm_", "jan_01h455vb4pex5vsknk084sn02q", "thm_not-a-ulid"}
	for _, c := range cases {
		if IsValid(c) {
			t.Errorf("expected %q to be invalid", c)
		}
	}
}
