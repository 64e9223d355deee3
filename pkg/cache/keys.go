package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

const opPrefix = "op:"

// OpKey returns the cache key for a pure operation and its request.
// Requests that marshal to the same JSON share a key. A request that cannot
// be marshaled hashes as an empty payload under its operation name.
func OpKey(op string, request any) string {
	data, _ := json.Marshal(request)
	return opPrefix + op + ":" + Hash(data)
}

// KeyType extracts the operation name from a key built by [OpKey].
// It is the label passed to cache observability hooks.
func KeyType(key string) string {
	rest, ok := strings.CutPrefix(key, opPrefix)
	if !ok || rest == "" {
		return "other"
	}
	op, _, _ := strings.Cut(rest, ":")
	return op
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
