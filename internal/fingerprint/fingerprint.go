// Package fingerprint computes canonical content hashes for chunks and
// derives the stable composite chunk identifiers built from them.
//
// Fingerprints detect exact duplicates after normalization; they are
// not a security boundary, so a collision-resistant digest is all that
// is required.
package fingerprint

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"polyglotai/internal/textnorm"
)

// ShortLen is the number of hex characters kept when a fingerprint is
// embedded in a chunk ID. Eight hex characters plus the sequence index
// give enough entropy for uniqueness across a pipeline run.
const ShortLen = 8

// Content hashes chunk content. When normalizeForHash is set and the
// language is Arabic, the strong Arabic normalization is applied first
// so diacritic and orthographic variants collapse to one fingerprint.
// NFKC and whitespace trimming are always applied. Identical
// post-normalization content always yields the identical digest.
func Content(content, lang string, normalizeForHash bool) string {
	if normalizeForHash && lang == textnorm.LangAR {
		content = textnorm.NormalizeArabic(content)
	}
	content = strings.TrimSpace(norm.NFKC.String(content))
	sum := sha1.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Short truncates a fingerprint for use as an ID suffix.
func Short(fp string) string {
	if len(fp) <= ShortLen {
		return fp
	}
	return fp[:ShortLen]
}

// ChunkID builds the stable composite identifier
// {pack_id}_{page}_{seq}_{short_fingerprint}. The fingerprint suffix
// disambiguates runs where the same pack/page/index triple recurs with
// slightly different content.
func ChunkID(packID string, page, seq int, fp string) string {
	return fmt.Sprintf("%s_%d_%d_%s", packID, page, seq, Short(fp))
}

// SeenSet tracks fingerprints accepted earlier in processing order.
// It grows monotonically within one pipeline run and is owned by a
// single sequential consumer; the first occurrence of a fingerprint
// wins and all later identical occurrences are duplicates.
type SeenSet struct {
	seen map[string]struct{}
}

// NewSeenSet returns an empty dedup set.
func NewSeenSet() *SeenSet {
	return &SeenSet{seen: make(map[string]struct{})}
}

// Check reports whether fp was already accepted, and records it if not.
func (s *SeenSet) Check(fp string) (duplicate bool) {
	if _, ok := s.seen[fp]; ok {
		return true
	}
	s.seen[fp] = struct{}{}
	return false
}

// Len reports how many distinct fingerprints have been accepted.
func (s *SeenSet) Len() int {
	return len(s.seen)
}
