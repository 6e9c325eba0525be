// Package mlmodel consumes the two pre-fitted model artifacts (TF-IDF
// vectorizer and binary linear classifier) produced by the training command.
// After loading, everything here is read-only and safe for concurrent use
// from multiple in-flight requests.
package mlmodel

import (
	"strings"
)

// VectorizerArtifact is the serialized form of a fitted TF-IDF vectorizer.
// Vocabulary maps a stemmed term to its feature column; IDF holds one weight
// per column. Both are fixed at training time.
type VectorizerArtifact struct {
	Vocabulary map[string]int
	IDF        []float64
}

// ClassifierArtifact is the serialized form of a fitted binary linear
// classifier. Classes holds the two class names in decision-function order:
// a non-positive score selects Classes[0], a positive score Classes[1].
type ClassifierArtifact struct {
	Classes   []string
	Weights   []float64
	Intercept float64
}

// minTermLength drops single-character terms, matching the tokenization the
// vocabulary was built with.
const minTermLength = 2

// Terms splits normalized text into the terms considered by the vectorizer.
func Terms(text string) []string {
	fields := strings.Fields(text)
	terms := fields[:0]
	for _, f := range fields {
		if len(f) >= minTermLength {
			terms = append(terms, f)
		}
	}
	return terms
}
