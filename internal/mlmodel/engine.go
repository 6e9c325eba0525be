package mlmodel

import (
	"encoding/gob"
	"fmt"
	"os"

	"triagem/internal/models"
)

// Engine bundles the two loaded artifacts behind the pair of functions the
// pipeline consumes. Both are pure and stateless after loading.
type Engine struct {
	vectorizer *Vectorizer
	classifier *LinearClassifier
}

// LoadEngine reads both artifacts from disk. Any failure (missing file,
// corrupt encoding, inconsistent shapes) is returned as an error and leaves
// the classification capability unavailable; it must not be papered over
// with a fallback model.
func LoadEngine(vectorizerPath, classifierPath string) (*Engine, error) {
	var vecArt VectorizerArtifact
	if err := readGob(vectorizerPath, &vecArt); err != nil {
		return nil, fmt.Errorf("load vectorizer artifact: %w", err)
	}
	var clfArt ClassifierArtifact
	if err := readGob(classifierPath, &clfArt); err != nil {
		return nil, fmt.Errorf("load classifier artifact: %w", err)
	}

	vectorizer, err := NewVectorizer(vecArt)
	if err != nil {
		return nil, err
	}
	classifier, err := NewLinearClassifier(clfArt)
	if err != nil {
		return nil, err
	}
	if len(clfArt.Weights) != vectorizer.Dimension() {
		return nil, fmt.Errorf("artifact mismatch: classifier has %d weights, vectorizer dimension is %d", len(clfArt.Weights), vectorizer.Dimension())
	}
	return &Engine{vectorizer: vectorizer, classifier: classifier}, nil
}

func (e *Engine) Vectorize(text string) FeatureVector {
	return e.vectorizer.Transform(text)
}

func (e *Engine) Classify(vec FeatureVector) models.Label {
	return e.classifier.Predict(vec)
}

// SaveVectorizer and SaveClassifier persist artifacts in the gob encoding
// LoadEngine expects. Used by the training command only.
func SaveVectorizer(path string, art VectorizerArtifact) error {
	return writeGob(path, art)
}

func SaveClassifier(path string, art ClassifierArtifact) error {
	return writeGob(path, art)
}

func readGob(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func writeGob(path string, in interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(in); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
