package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// SourceKey returns the cache key of an operation on a source text
func SourceKey(operation, source string) string {
	h := sha256.New()
	h.Write([]byte(operation))
	h.Write([]byte{0})
	h.Write([]byte(source))
	return operation + ":" + hex.EncodeToString(h.Sum(nil))
}
