package keys

import (
	"crypto/sha256"
	"encoding/hex"
)

// MaxLen is the longest key memcached accepts.
const MaxLen = 250

// Prefixed isolates key under ns ("ns:key"). When the result would exceed
// MaxLen the user key is replaced by its SHA-256 so the entry stays addressable.
// An empty ns returns key unchanged, however long: the client rejects keys
// over MaxLen and that error reaches the caller.
func Prefixed(ns, key string) string {
	if ns == "" {
		return key
	}
	k := ns + ":" + key
	if len(k) <= MaxLen {
		return k
	}
	sum := sha256.Sum256([]byte(key))
	return ns + ":#" + hex.EncodeToString(sum[:])
}
