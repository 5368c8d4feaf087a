package shares

import (
	"strings"
	"testing"
)

func TestGenerateSlug(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		slug := generateSlug(slugLength)

		if len(slug) != slugLength {
			t.Fatalf("slug length = %d, want %d", len(slug), slugLength)
		}

		for _, r := range slug {
			if !strings.ContainsRune(slugChars, r) {
				t.Fatalf("slug %q contains unexpected character %q", slug, r)
			}
		}

		seen[slug] = true
	}

	// 36^6 possibilities make 100 collisions effectively impossible
	if len(seen) < 95 {
		t.Errorf("slugs barely vary: %d distinct out of 100", len(seen))
	}
}
