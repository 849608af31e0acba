// internal/matching/embedding/hash.go
package embedding

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ContentHash returns a stable hex digest of an entity's embedding text.
// A changed hash is the cache invalidation signal; unchanged text reuses the
// stored vector without a provider call.
func ContentHash(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}
