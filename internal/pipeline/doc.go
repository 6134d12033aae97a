// Package pipeline assembles repertoires: a base phase that builds naive
// clusters from fresh recombinations, then a mutated phase that clones every
// antibody of the base repertoire and hypermutates each copy independently.
//
// Work is split across goroutines by slot; results are merged in ordinal
// order, so output is identical for any thread count.
package pipeline
