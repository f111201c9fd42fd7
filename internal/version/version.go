// In file: internal/version/version.go

// Package version centralizes the versioning for different logical components
// of the gateway.
//
// Including these version strings in Redis cache keys invalidates stale
// entries automatically: bump a component's version before deploying a change
// to it and old keys stop matching, forcing fresh responses.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComponentVersions holds the version strings for the logical parts of the
// application. Increment a version here before deploying a change to that
// component.
var ComponentVersions = struct {
	// Tools covers the builtin tool implementations and their renderings.
	Tools string
	// Model covers the generation backends (pattern responses, Gemini
	// system instruction).
	Model string
	// Engine covers the parser/resolver/composer logic.
	Engine string
}{
	Tools:  "v1.0",
	Model:  "v1.0",
	Engine: "v1.0",
}

// GenerateVersionedCacheKey creates a consistent, version-aware Redis key for
// caching composed responses.
//
// Example output: "askcache:a1b2c3d4...:tv1.0_mv1.0_ev1.0"
func GenerateVersionedCacheKey(prefix, input string) string {
	hasher := sha256.New()
	hasher.Write([]byte(input))
	inputHash := hex.EncodeToString(hasher.Sum(nil))

	versionString := fmt.Sprintf("t%s_m%s_e%s",
		ComponentVersions.Tools,
		ComponentVersions.Model,
		ComponentVersions.Engine,
	)

	return fmt.Sprintf("%s:%s:%s", prefix, inputHash, versionString)
}
