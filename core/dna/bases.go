// core/dna/bases.go
package dna

import (
	"fmt"
	"strings"
	"unicode"

	"igsim-core/rng"
)

// Bases is the alphabet gene segments are written in.
const Bases = "ACGT"

// Normalize drops whitespace and uppercases.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Validate normalizes s and rejects anything outside A/C/G/T.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	if s == "" {
		return s, fmt.Errorf("empty sequence")
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(Bases, s[i]) < 0 {
			return "", fmt.Errorf("invalid base %q at %d; allowed: A C G T", s[i], i+1)
		}
	}
	return s, nil
}

// RandomBase draws one of A/C/G/T uniformly.
func RandomBase(r rng.Rand) byte {
	return Bases[r.IntN(len(Bases))]
}

// RandomSeq draws n independent uniform bases.
func RandomSeq(r rng.Rand, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = RandomBase(r)
	}
	return string(out)
}

// Substitute draws uniformly among the three bases different from b.
func Substitute(r rng.Rand, b byte) byte {
	var alt [3]byte
	k := 0
	for i := 0; i < len(Bases); i++ {
		if Bases[i] != b {
			if k == len(alt) {
				break
			}
			alt[k] = Bases[i]
			k++
		}
	}
	return alt[r.IntN(k)]
}
