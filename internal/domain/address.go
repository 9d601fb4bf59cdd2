package domain

import "strings"

const addressLength = 56

const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// IsValidAddress reports whether s looks like a Stellar account address:
// 56 characters, 'G' prefix, base32 alphabet. This is a structural check
// only; the ed25519 checksum is not verified here.
func IsValidAddress(s string) bool {
	if len(s) != addressLength || s[0] != 'G' {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(base32Alphabet, r) {
			return false
		}
	}
	return true
}
