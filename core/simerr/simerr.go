// Package simerr holds the error kinds raised by the simulation core.
//
// Every error is a programming or configuration fault detected at the call
// that returns it. Callers wrap them with context and test with errors.Is;
// nothing in the core retries.
package simerr

import "errors"

var (
	// ErrRange: a trim length exceeds the segment it trims.
	ErrRange = errors.New("range error")
	// ErrIndex: a gene index is out of range for its category.
	ErrIndex = errors.New("index error")
	// ErrAnnotation: the sequence is too short for the CDR labeling strategy.
	ErrAnnotation = errors.New("annotation error")
	// ErrConfiguration: stage order violated, min > max, bad probability,
	// or settings that do not fit the chain.
	ErrConfiguration = errors.New("configuration error")
)
