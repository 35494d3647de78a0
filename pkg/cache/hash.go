package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash returns the hex SHA-256 of data. Compile result documents, sized
// functions and diagrams are all identified this way.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. A sized [cfg.Function] hashes
// differently from the same function measured at another font size.
//
// [cfg.Function]: https://pkg.go.dev/github.com/matzehuels/cfgview/pkg/cfg#Function
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return Hash(data), nil
}

// stageKey names a cached stage output as "<stage>:<sha256>", hashing the
// input it was derived from together with the options that shaped it.
func stageKey(stage, input string, opts any) string {
	data, _ := json.Marshal([]any{input, opts})
	return stage + ":" + Hash(data)
}
