// core/dna/iupac.go
package dna

/* -------------------------- IUPAC lookup table -------------------------- */

var iupacMask [256]byte // bit0=A bit1=C bit2=G bit3=T

func init() {
	set := func(c byte, bits byte) {
		iupacMask[c] = bits
		iupacMask[c|0x20] = bits // lowercase mirrors uppercase
	}
	set('A', 1)       // 0001
	set('C', 2)       // 0010
	set('G', 4)       // 0100
	set('T', 8)       // 1000
	set('R', 1|4)     // A/G
	set('Y', 2|8)     // C/T
	set('S', 2|4)     // C/G
	set('W', 1|8)     // A/T
	set('K', 4|8)     // G/T
	set('M', 1|2)     // A/C
	set('B', 2|4|8)   // C/G/T
	set('D', 1|4|8)   // A/G/T
	set('H', 1|2|8)   // A/C/T
	set('V', 1|2|4)   // A/C/G
	set('N', 1|2|4|8) // any (motif side only)
}

// BaseMatch reports whether motif base p accepts sequence base g.
// Only A/C/G/T are accepted on the sequence side.
func BaseMatch(g, p byte) bool {
	switch g {
	case 'A', 'C', 'G', 'T':
	default:
		return false
	}
	return iupacMask[p]&iupacMask[g] != 0
}

// FindMotif returns every start position where motif (IUPAC) matches seq
// without mismatches. Overlapping occurrences are all reported.
func FindMotif(seq, motif []byte) []int {
	ml := len(motif)
	if ml == 0 || len(seq) < ml {
		return nil
	}
	var out []int
window:
	for pos := 0; pos <= len(seq)-ml; pos++ {
		for j := 0; j < ml; j++ {
			if !BaseMatch(seq[pos+j], motif[j]) {
				continue window
			}
		}
		out = append(out, pos)
	}
	return out
}
