package mlmodel

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triagem/internal/models"
)

func testVectorizerArtifact() VectorizerArtifact {
	return VectorizerArtifact{
		Vocabulary: map[string]int{"ajud": 0, "sistem": 1, "obrig": 2},
		IDF:        []float64{1, 1, 2},
	}
}

func TestVectorizerTransform(t *testing.T) {
	v, err := NewVectorizer(testVectorizerArtifact())
	require.NoError(t, err)

	vec := v.Transform("ajud ajud sistem desconhecido x")

	// Counts: ajud=2, sistem=1; "desconhecido" is out of vocabulary and the
	// single-character "x" is below the term-length cutoff.
	require.Len(t, vec, 2)

	// TF*IDF = {0: 2, 1: 1}, L2 norm sqrt(5).
	norm := math.Sqrt(5)
	assert.InDelta(t, 2/norm, vec[0], 1e-9)
	assert.InDelta(t, 1/norm, vec[1], 1e-9)

	// Unit length after normalization.
	var sum float64
	for _, val := range vec {
		sum += val * val
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestVectorizerTransformNoKnownTerms(t *testing.T) {
	v, err := NewVectorizer(testVectorizerArtifact())
	require.NoError(t, err)

	assert.Empty(t, v.Transform(""))
	assert.Empty(t, v.Transform("termos totalmente desconhecidos"))
}

func TestNewVectorizerRejectsBadArtifacts(t *testing.T) {
	_, err := NewVectorizer(VectorizerArtifact{})
	assert.Error(t, err, "empty vocabulary must be rejected")

	_, err = NewVectorizer(VectorizerArtifact{
		Vocabulary: map[string]int{"ajud": 5},
		IDF:        []float64{1},
	})
	assert.Error(t, err, "column outside the IDF table must be rejected")
}

func TestLinearClassifierPredict(t *testing.T) {
	clf, err := NewLinearClassifier(ClassifierArtifact{
		Classes:   []string{"productive", "unproductive"},
		Weights:   []float64{-1, 2, 0},
		Intercept: 0,
	})
	require.NoError(t, err)

	assert.Equal(t, models.Label("productive"), clf.Predict(FeatureVector{0: 1}))
	assert.Equal(t, models.Label("unproductive"), clf.Predict(FeatureVector{1: 1}))
	// Zero score falls back to the first class.
	assert.Equal(t, models.Label("productive"), clf.Predict(FeatureVector{}))
}

func TestNewLinearClassifierRejectsBadArtifacts(t *testing.T) {
	_, err := NewLinearClassifier(ClassifierArtifact{Classes: []string{"only"}, Weights: []float64{1}})
	assert.Error(t, err)

	_, err = NewLinearClassifier(ClassifierArtifact{Classes: []string{"a", "b"}})
	assert.Error(t, err)
}

func TestLoadEngineRoundTrip(t *testing.T) {
	dir := t.TempDir()
	vecPath := filepath.Join(dir, "vectorizer.gob")
	clfPath := filepath.Join(dir, "model.gob")

	require.NoError(t, SaveVectorizer(vecPath, testVectorizerArtifact()))
	require.NoError(t, SaveClassifier(clfPath, ClassifierArtifact{
		Classes:   []string{"productive", "unproductive"},
		Weights:   []float64{0, 0, 1},
		Intercept: 0,
	}))

	engine, err := LoadEngine(vecPath, clfPath)
	require.NoError(t, err)

	vec := engine.Vectorize("obrig")
	assert.Equal(t, models.Label("unproductive"), engine.Classify(vec))
}

func TestLoadEngineMissingArtifacts(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadEngine(filepath.Join(dir, "vectorizer.gob"), filepath.Join(dir, "model.gob"))
	assert.Error(t, err)
}

func TestLoadEngineCorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	vecPath := filepath.Join(dir, "vectorizer.gob")
	clfPath := filepath.Join(dir, "model.gob")
	require.NoError(t, os.WriteFile(vecPath, []byte("not a gob stream"), 0o644))
	require.NoError(t, os.WriteFile(clfPath, []byte("not a gob stream"), 0o644))

	_, err := LoadEngine(vecPath, clfPath)
	assert.Error(t, err)
}

func TestLoadEngineShapeMismatch(t *testing.T) {
	dir := t.TempDir()
	vecPath := filepath.Join(dir, "vectorizer.gob")
	clfPath := filepath.Join(dir, "model.gob")

	require.NoError(t, SaveVectorizer(vecPath, testVectorizerArtifact()))
	require.NoError(t, SaveClassifier(clfPath, ClassifierArtifact{
		Classes: []string{"productive", "unproductive"},
		Weights: []float64{1}, // vectorizer dimension is 3
	}))

	_, err := LoadEngine(vecPath, clfPath)
	assert.Error(t, err)
}
