// Package identity derives the per-device vote identity used to enforce
// the one-vote-per-device-per-match policy.
package identity

import "strings"

// keySeparator joins the match id and the fingerprint. Fingerprints are
// opaque strings produced by the client; they may themselves contain the
// separator, which is harmless because the match id never does.
const keySeparator = ":"

// Normalize trims surrounding whitespace from a raw device fingerprint.
// No other transformation is applied; the value is opaque.
func Normalize(fingerprint string) string {
	return strings.TrimSpace(fingerprint)
}

// VoteKey builds the composite one-vote guard key for a (match, device)
// pair. The same derivation runs on the optimistic client path and on the
// authoritative server path.
func VoteKey(matchID, fingerprint string) string {
	return matchID + keySeparator + Normalize(fingerprint)
}
