package mlmodel

import (
	"fmt"

	"triagem/internal/models"
)

// LinearClassifier applies a fitted binary linear decision function to a
// feature vector.
type LinearClassifier struct {
	art ClassifierArtifact
}

func NewLinearClassifier(art ClassifierArtifact) (*LinearClassifier, error) {
	if len(art.Classes) != 2 {
		return nil, fmt.Errorf("classifier artifact must define exactly two classes, got %d", len(art.Classes))
	}
	if len(art.Weights) == 0 {
		return nil, fmt.Errorf("classifier artifact has no weights")
	}
	return &LinearClassifier{art: art}, nil
}

// Predict evaluates the decision function over the sparse vector. A positive
// score selects the second class, anything else the first.
func (c *LinearClassifier) Predict(vec FeatureVector) models.Label {
	score := c.art.Intercept
	for col, val := range vec {
		if col < len(c.art.Weights) {
			score += c.art.Weights[col] * val
		}
	}
	if score > 0 {
		return models.Label(c.art.Classes[1])
	}
	return models.Label(c.art.Classes[0])
}
