// Package simhash provides 64-bit SimHash fingerprints for near-duplicate
// text detection. The scraper uses it to avoid accumulating the same page
// text twice when several probed paths resolve to the same content.
package simhash

import (
	"hash/fnv"
	"math/bits"
	"strings"
)

// Fingerprint computes a 64-bit SimHash of the text over lowercased
// word-level tokens. Empty or whitespace-only input yields 0.
func Fingerprint(text string) uint64 {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return 0
	}

	var vector [64]int
	for _, tok := range tokens {
		h := fnv.New64a()
		h.Write([]byte(tok))
		sum := h.Sum64()
		for i := 0; i < 64; i++ {
			if sum&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var fp uint64
	for i, v := range vector {
		if v > 0 {
			fp |= 1 << uint(i)
		}
	}
	return fp
}

// Distance returns the Hamming distance between two fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Similar reports whether the Hamming distance between two fingerprints is
// at most threshold.
func Similar(a, b uint64, threshold int) bool {
	return Distance(a, b) <= threshold
}
