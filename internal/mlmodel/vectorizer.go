package mlmodel

import (
	"fmt"
	"math"
)

// FeatureVector is a sparse feature-column to weight mapping. The dimension
// is fixed by the vocabulary learned at training time; absent columns are
// zero.
type FeatureVector map[int]float64

// Vectorizer maps normalized text to a TF-IDF feature vector using the
// vocabulary and IDF weights of a fitted artifact.
type Vectorizer struct {
	art VectorizerArtifact
}

func NewVectorizer(art VectorizerArtifact) (*Vectorizer, error) {
	if len(art.Vocabulary) == 0 {
		return nil, fmt.Errorf("vectorizer artifact has an empty vocabulary")
	}
	for term, col := range art.Vocabulary {
		if col < 0 || col >= len(art.IDF) {
			return nil, fmt.Errorf("vectorizer artifact: term %q maps to column %d, outside IDF table of size %d", term, col, len(art.IDF))
		}
	}
	return &Vectorizer{art: art}, nil
}

// Dimension returns the fixed vector dimension (vocabulary size).
func (v *Vectorizer) Dimension() int {
	return len(v.art.IDF)
}

// Transform computes raw term counts over the known vocabulary, scales them
// by the stored IDF weights, and L2-normalizes the result. Out-of-vocabulary
// terms are ignored. An input with no known terms yields an empty vector.
func (v *Vectorizer) Transform(text string) FeatureVector {
	vec := make(FeatureVector)
	for _, term := range Terms(text) {
		col, ok := v.art.Vocabulary[term]
		if !ok {
			continue
		}
		vec[col]++
	}

	var sumSquares float64
	for col := range vec {
		vec[col] *= v.art.IDF[col]
		sumSquares += vec[col] * vec[col]
	}
	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for col := range vec {
			vec[col] /= norm
		}
	}
	return vec
}
