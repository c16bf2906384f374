package textproc

import (
	"hash/fnv"
	"math/bits"
	"strings"
)

// SketchBits is the width of the content sketch
const SketchBits = 32

// Sketch is a 32-bit weighted-bit signature of normalized text, used to
// detect near-duplicate reports cheaply. Campaign attribution uses Jaccard
// on raw n-grams instead, which is more forgiving.
type Sketch uint32

// NGrams produces the set of contiguous n-word windows of normalized text.
// Text with fewer than n words yields an empty set.
func NGrams(normalized string, n int) map[string]struct{} {
	if n < 1 {
		n = 1
	}
	words := Tokenize(normalized)
	grams := make(map[string]struct{})
	for i := 0; i+n <= len(words); i++ {
		grams[strings.Join(words[i:i+n], " ")] = struct{}{}
	}
	return grams
}

// Jaccard returns |A∩B| / |A∪B| for two n-gram sets. Two empty sets are
// not considered similar: "nothing to compare" is distinct from
// "identical", so the result is 0.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	inter := 0
	for g := range small {
		if _, ok := large[g]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// NewSketch builds the weighted-bit sketch of text: each token's 32-bit
// hash contributes +1 to vector position i when bit i is set, -1 otherwise;
// the sketch sets bit i when the accumulated value is positive.
func NewSketch(text string) Sketch {
	words := Tokenize(Normalize(text))
	if len(words) == 0 {
		return 0
	}

	var v [SketchBits]int
	for _, w := range words {
		h := hashToken(w)
		for i := 0; i < SketchBits; i++ {
			if (h>>i)&1 == 1 {
				v[i]++
			} else {
				v[i]--
			}
		}
	}

	var s Sketch
	for i := 0; i < SketchBits; i++ {
		if v[i] > 0 {
			s |= 1 << i
		}
	}
	return s
}

// HammingDistance counts the differing bits between two sketches
func HammingDistance(a, b Sketch) int {
	return bits.OnesCount32(uint32(a ^ b))
}

// NearDuplicate reports whether two sketches are within threshold bits
func NearDuplicate(a, b Sketch, threshold int) bool {
	return HammingDistance(a, b) <= threshold
}

func hashToken(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s)) // hash.Hash.Write never returns an error
	return h.Sum32()
}
