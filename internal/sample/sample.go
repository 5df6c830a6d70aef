// Package sample ships a pair of product documents that differ in every way
// the comparator can detect, for demos and smoke tests.
package sample

import (
	_ "embed"
)

var (
	//go:embed data/source.json
	sourceJSON string

	//go:embed data/target.json
	targetJSON string
)

// Source returns the sample source document
func Source() string {
	return sourceJSON
}

// Target returns the sample target document
func Target() string {
	return targetJSON
}
