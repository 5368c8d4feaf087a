package shares

import "math/rand/v2"

const (
	slugLength = 6
	slugChars  = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// produces a short random identifier for public share URLs; slugs are
// not checked for collisions (36^6 keyspace)
func generateSlug(length int) string {
	b := make([]byte, length)

	for i := range b {
		b[i] = slugChars[rand.IntN(len(slugChars))]
	}

	return string(b)
}
