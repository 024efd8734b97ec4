// Package diffkit implements the comparison primitives: line and word
// level text diffing, sentence similarity, date-reference comparison,
// formatting comparison, perceptual visual comparison and importance
// classification. Services compose these into the comparison pipeline.
package diffkit
