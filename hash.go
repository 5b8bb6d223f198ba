package linguahub

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// ContentCacheKey generates the content-cache key for a content hash and
// target language.
func ContentCacheKey(hash, targetLang string) string {
	return "content:" + hash + ":" + targetLang
}
