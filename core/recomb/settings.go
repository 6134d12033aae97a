// core/recomb/settings.go
package recomb

import (
	"fmt"
	"strings"

	"igsim-core/simerr"
)

// Chain selects the segment layout: VDJ for heavy, VJ for light.
type Chain int

const (
	Heavy Chain = iota
	Light
)

func (c Chain) String() string {
	switch c {
	case Heavy:
		return "heavy"
	case Light:
		return "light"
	}
	return fmt.Sprintf("Chain(%d)", int(c))
}

// ParseChain accepts heavy|hc|light|lc.
func ParseChain(s string) (Chain, error) {
	switch strings.ToLower(s) {
	case "heavy", "hc":
		return Heavy, nil
	case "light", "lc":
		return Light, nil
	}
	return 0, fmt.Errorf("unknown chain %q (want heavy|light): %w", s, simerr.ErrConfiguration)
}

// RemovingSettings are exonuclease trim lengths per segment boundary.
// DStart/DEnd are heavy-chain only.
type RemovingSettings struct {
	VEnd   int
	DStart int
	DEnd   int
	JStart int
}

func (s RemovingSettings) check(c Chain) error {
	if s.VEnd < 0 || s.DStart < 0 || s.DEnd < 0 || s.JStart < 0 {
		return fmt.Errorf("negative trim in %v: %w", s, simerr.ErrRange)
	}
	if c == Light && (s.DStart != 0 || s.DEnd != 0) {
		return fmt.Errorf("D trims on a light chain: %w", simerr.ErrConfiguration)
	}
	return nil
}

func (s RemovingSettings) String() string {
	return fmt.Sprintf("V end: %d, D start: %d, D end: %d, J start: %d", s.VEnd, s.DStart, s.DEnd, s.JStart)
}

// PInsertionSettings are palindromic fragments inserted at segment boundaries.
// DStart/DEnd are heavy-chain only.
type PInsertionSettings struct {
	VEnd   string
	DStart string
	DEnd   string
	JStart string
}

// Len is the total number of P nucleotides.
func (s PInsertionSettings) Len() int {
	return len(s.VEnd) + len(s.DStart) + len(s.DEnd) + len(s.JStart)
}

func (s PInsertionSettings) check(c Chain) error {
	if c == Light && (s.DStart != "" || s.DEnd != "") {
		return fmt.Errorf("D palindromes on a light chain: %w", simerr.ErrConfiguration)
	}
	return nil
}

func (s PInsertionSettings) String() string {
	return fmt.Sprintf("V end: %q, D start: %q, D end: %q, J start: %q", s.VEnd, s.DStart, s.DEnd, s.JStart)
}

// NInsertionSettings are non-templated fragments between segments.
// VD and DJ apply to heavy chains, VJ to light chains.
type NInsertionSettings struct {
	VD string
	DJ string
	VJ string
}

// Len is the total number of N nucleotides.
func (s NInsertionSettings) Len() int { return len(s.VD) + len(s.DJ) + len(s.VJ) }

func (s NInsertionSettings) check(c Chain) error {
	switch c {
	case Heavy:
		if s.VJ != "" {
			return fmt.Errorf("VJ insertion on a heavy chain: %w", simerr.ErrConfiguration)
		}
	case Light:
		if s.VD != "" || s.DJ != "" {
			return fmt.Errorf("VD/DJ insertion on a light chain: %w", simerr.ErrConfiguration)
		}
	}
	return nil
}

func (s NInsertionSettings) String() string {
	return fmt.Sprintf("VD: %q, DJ: %q, VJ: %q", s.VD, s.DJ, s.VJ)
}
