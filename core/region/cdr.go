// core/region/cdr.go
package region

import (
	"fmt"
	"strings"
)

// CDR names a complementarity-determining region.
type CDR int

const (
	CDR1 CDR = iota
	CDR2
	CDR3
	numCDRs
)

func (c CDR) String() string {
	if c >= 0 && c < numCDRs {
		return fmt.Sprintf("CDR%d", int(c)+1)
	}
	return fmt.Sprintf("CDR(%d)", int(c))
}

// Range is a half-open [Start, End) offset range.
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int { return r.End - r.Start }

func (r Range) Contains(pos int) bool { return pos >= r.Start && pos < r.End }

func (r Range) String() string { return fmt.Sprintf("%d-%d", r.Start, r.End) }

// CDRLabeling is the ordered set CDR1..CDR3 of ranges over a sequence.
// The zero value is unlabeled.
type CDRLabeling struct {
	ranges  [numCDRs]Range
	labeled bool
}

// NewCDRLabeling builds a labeling from the three ranges in order.
func NewCDRLabeling(cdr1, cdr2, cdr3 Range) CDRLabeling {
	return CDRLabeling{ranges: [numCDRs]Range{cdr1, cdr2, cdr3}, labeled: true}
}

func (l CDRLabeling) Labeled() bool { return l.labeled }

// Get returns the range of c.
func (l CDRLabeling) Get(c CDR) Range { return l.ranges[c] }

// Ranges returns CDR1..CDR3 in order.
func (l CDRLabeling) Ranges() []Range { return append([]Range(nil), l.ranges[:]...) }

// Contains reports whether pos falls inside any CDR.
func (l CDRLabeling) Contains(pos int) bool {
	if !l.labeled {
		return false
	}
	for _, r := range l.ranges {
		if r.Contains(pos) {
			return true
		}
	}
	return false
}

func (l CDRLabeling) String() string {
	if !l.labeled {
		return "CDRs: unlabeled\n"
	}
	var b strings.Builder
	for i, r := range l.ranges {
		fmt.Fprintf(&b, "%v: %v\n", CDR(i), r)
	}
	return b.String()
}
