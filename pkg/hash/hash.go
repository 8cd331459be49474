package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// Fingerprint returns a short stable digest of the joined parts. Used
// to fingerprint analysis snapshots so a selection can be checked
// against the snapshot it was made from.
func Fingerprint(parts ...string) string {
	return SHA256Hex(strings.Join(parts, "\x1f"))[:16]
}

// GroupID derives a stable identifier for a duplicate group from its
// kind and member ids. Member order does not matter; the input slice is
// left unmodified.
func GroupID(kind string, commentIDs []string) string {
	sorted := make([]string, len(commentIDs))
	copy(sorted, commentIDs)
	sort.Strings(sorted)
	return Fingerprint(append([]string{kind}, sorted...)...)
}
