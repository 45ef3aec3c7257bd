package hasher

import (
	"strconv"
	"unicode/utf16"
)

// Hash returns a fast, non-cryptographic digest of s rendered in base 36.
//
// The value is computed as h = h*31 + c over the UTF-16 code units of s, with h
// wrapping as a signed 32-bit integer, so negative digests carry a leading "-".
// Collisions are possible and accepted.
func Hash(s string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(c)
	}

	return strconv.FormatInt(int64(h), 36)
}

// CacheKey builds the cache key of a (product image, user photo) pair.
func CacheKey(productImageIdentity, userPhotoIdentity string) string {
	return Hash(productImageIdentity) + "_" + Hash(userPhotoIdentity)
}
