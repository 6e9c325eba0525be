// Package training fits the TF-IDF vectorizer and the logistic-regression
// classifier from a labeled CSV and persists both artifacts. It is a
// one-shot offline procedure; the runtime core only ever consumes its
// output.
package training

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"triagem/internal/mlmodel"
	"triagem/internal/textnorm"
)

// Sample is one labeled training example.
type Sample struct {
	Text  string
	Label string
}

type Options struct {
	DatasetPath    string
	VectorizerPath string
	ModelPath      string

	TestFraction float64 // held-out share, default 0.2
	Seed         int64   // shuffle seed, default 42
	Epochs       int     // gradient-descent passes, default 300
	LearningRate float64 // default 0.5
	L2           float64 // ridge penalty, default 1e-4
}

// ClassMetrics is one row of the evaluation report.
type ClassMetrics struct {
	Class     string
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

type Report struct {
	TrainSamples int
	TestSamples  int
	Vocabulary   int
	Accuracy     float64
	PerClass     []ClassMetrics
}

func (o *Options) applyDefaults() {
	if o.TestFraction <= 0 || o.TestFraction >= 1 {
		o.TestFraction = 0.2
	}
	if o.Seed == 0 {
		o.Seed = 42
	}
	if o.Epochs <= 0 {
		o.Epochs = 300
	}
	if o.LearningRate <= 0 {
		o.LearningRate = 0.5
	}
	if o.L2 < 0 {
		o.L2 = 1e-4
	}
}

// Run executes the full procedure: load, normalize, split, fit, evaluate,
// persist. The returned report covers the held-out split.
func Run(opts Options) (*Report, error) {
	opts.applyDefaults()

	samples, err := LoadCSV(opts.DatasetPath)
	if err != nil {
		return nil, err
	}
	log.Infof("Loaded %d samples from %s", len(samples), opts.DatasetPath)

	classes := classNames(samples)
	if len(classes) != 2 {
		return nil, fmt.Errorf("dataset must contain exactly two labels, got %v", classes)
	}

	normalized := make([]string, len(samples))
	for i, s := range samples {
		normalized[i] = textnorm.Normalize(s.Text)
	}

	// Deterministic shuffle, then split. The vocabulary is learned from the
	// training share only.
	order := rand.New(rand.NewSource(opts.Seed)).Perm(len(samples))
	testSize := int(float64(len(samples)) * opts.TestFraction)
	trainIdx, testIdx := order[testSize:], order[:testSize]
	if len(trainIdx) == 0 {
		return nil, fmt.Errorf("dataset too small: no training samples left after the %.0f%% test split", opts.TestFraction*100)
	}

	trainTexts := make([]string, len(trainIdx))
	for i, idx := range trainIdx {
		trainTexts[i] = normalized[idx]
	}
	vecArt := fitVectorizer(trainTexts)
	vectorizer, err := mlmodel.NewVectorizer(vecArt)
	if err != nil {
		return nil, err
	}

	trainVecs := make([]mlmodel.FeatureVector, len(trainIdx))
	trainY := make([]float64, len(trainIdx))
	for i, idx := range trainIdx {
		trainVecs[i] = vectorizer.Transform(normalized[idx])
		if samples[idx].Label == classes[1] {
			trainY[i] = 1
		}
	}
	clfArt := fitLogisticRegression(trainVecs, trainY, classes, vectorizer.Dimension(), opts)
	classifier, err := mlmodel.NewLinearClassifier(clfArt)
	if err != nil {
		return nil, err
	}

	report := evaluate(classifier, vectorizer, samples, normalized, testIdx, classes)
	report.TrainSamples = len(trainIdx)
	report.Vocabulary = vectorizer.Dimension()

	if err := mlmodel.SaveVectorizer(opts.VectorizerPath, vecArt); err != nil {
		return nil, fmt.Errorf("save vectorizer artifact: %w", err)
	}
	if err := mlmodel.SaveClassifier(opts.ModelPath, clfArt); err != nil {
		return nil, fmt.Errorf("save classifier artifact: %w", err)
	}
	return report, nil
}

// LoadCSV reads a dataset with required "text" and "label" columns.
func LoadCSV(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset %s has no data rows", path)
	}

	textCol, labelCol := -1, -1
	for i, name := range records[0] {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "text":
			textCol = i
		case "label":
			labelCol = i
		}
	}
	if textCol == -1 || labelCol == -1 {
		return nil, fmt.Errorf("dataset %s must contain 'text' and 'label' columns", path)
	}

	samples := make([]Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) <= textCol || len(rec) <= labelCol {
			continue
		}
		samples = append(samples, Sample{
			Text:  rec[textCol],
			Label: strings.TrimSpace(rec[labelCol]),
		})
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("dataset %s has no usable rows", path)
	}
	return samples, nil
}

func classNames(samples []Sample) []string {
	seen := map[string]struct{}{}
	var classes []string
	for _, s := range samples {
		if _, ok := seen[s.Label]; !ok {
			seen[s.Label] = struct{}{}
			classes = append(classes, s.Label)
		}
	}
	sort.Strings(classes)
	return classes
}

// fitVectorizer learns the vocabulary and smoothed IDF weights from the
// training texts: idf(t) = ln((1+n)/(1+df(t))) + 1. Columns are assigned in
// sorted term order so the artifact is reproducible.
func fitVectorizer(texts []string) mlmodel.VectorizerArtifact {
	df := map[string]int{}
	for _, text := range texts {
		seen := map[string]struct{}{}
		for _, term := range mlmodel.Terms(text) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(texts))
	art := mlmodel.VectorizerArtifact{
		Vocabulary: make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
	}
	for col, term := range terms {
		art.Vocabulary[term] = col
		art.IDF[col] = math.Log((1+n)/float64(1+df[term])) + 1
	}
	return art
}

// fitLogisticRegression runs plain stochastic gradient descent on the
// log-loss with an L2 penalty. y holds 1 for classes[1], 0 for classes[0],
// matching the decision-function orientation of the classifier artifact.
func fitLogisticRegression(vecs []mlmodel.FeatureVector, y []float64, classes []string, dim int, opts Options) mlmodel.ClassifierArtifact {
	weights := make([]float64, dim)
	var intercept float64

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		for i, vec := range vecs {
			score := intercept
			for col, val := range vec {
				score += weights[col] * val
			}
			grad := sigmoid(score) - y[i]
			for col, val := range vec {
				weights[col] -= opts.LearningRate * (grad*val + opts.L2*weights[col])
			}
			intercept -= opts.LearningRate * grad
		}
	}

	return mlmodel.ClassifierArtifact{
		Classes:   append([]string(nil), classes...),
		Weights:   weights,
		Intercept: intercept,
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func evaluate(classifier *mlmodel.LinearClassifier, vectorizer *mlmodel.Vectorizer, samples []Sample, normalized []string, testIdx []int, classes []string) *Report {
	report := &Report{TestSamples: len(testIdx)}

	truePos := map[string]int{}
	falsePos := map[string]int{}
	support := map[string]int{}
	correct := 0
	for _, idx := range testIdx {
		want := samples[idx].Label
		got := string(classifier.Predict(vectorizer.Transform(normalized[idx])))
		support[want]++
		if got == want {
			truePos[got]++
			correct++
		} else {
			falsePos[got]++
		}
	}
	if len(testIdx) > 0 {
		report.Accuracy = float64(correct) / float64(len(testIdx))
	}

	for _, class := range classes {
		m := ClassMetrics{Class: class, Support: support[class]}
		if predicted := truePos[class] + falsePos[class]; predicted > 0 {
			m.Precision = float64(truePos[class]) / float64(predicted)
		}
		if support[class] > 0 {
			m.Recall = float64(truePos[class]) / float64(support[class])
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		report.PerClass = append(report.PerClass, m)
	}
	return report
}
