package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triagem/internal/mlmodel"
	"triagem/internal/models"
	"triagem/internal/textnorm"
)

// --- Fakes ---

type fakeEngine struct {
	vectorizeCalls []string
	classifyCalls  int
	label          models.Label
}

func (f *fakeEngine) Vectorize(text string) mlmodel.FeatureVector {
	f.vectorizeCalls = append(f.vectorizeCalls, text)
	return mlmodel.FeatureVector{0: 1}
}

func (f *fakeEngine) Classify(vec mlmodel.FeatureVector) models.Label {
	f.classifyCalls++
	return f.label
}

type suggestCall struct {
	text  string
	label models.Label
}

type fakeSuggester struct {
	calls []suggestCall
}

func (f *fakeSuggester) Suggest(ctx context.Context, text string, label models.Label) string {
	f.calls = append(f.calls, suggestCall{text: text, label: label})
	return "sugestão para " + text
}

func TestShouldShortCircuit(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"", true},
		{"Ok", true},
		{"Ok, entendido", true},
		{"uma duas tres quatro", true},
		{"uma duas tres quatro cinco", false},
		{"  espaços   não  contam   duplo ", true}, // 4 words
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ShouldShortCircuit(tc.text), "text %q", tc.text)
	}
}

func TestProcessMessagesShortCircuit(t *testing.T) {
	engine := &fakeEngine{label: models.LabelProductive}
	suggester := &fakeSuggester{}
	svc := NewService(engine, suggester)

	results, err := svc.ProcessMessages(context.Background(), []string{"Ok"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, "Ok", res.OriginalText)
	assert.Equal(t, models.LabelUnproductive, res.Label)
	assert.True(t, res.Skipped)
	assert.Empty(t, res.ProcessedText)

	// Vectorizer and classifier must never run on a short-circuited message.
	assert.Empty(t, engine.vectorizeCalls)
	assert.Zero(t, engine.classifyCalls)

	// The suggestion still runs, with the original text and forced label.
	require.Len(t, suggester.calls, 1)
	assert.Equal(t, suggestCall{text: "Ok", label: models.LabelUnproductive}, suggester.calls[0])
}

func TestProcessMessagesFullPath(t *testing.T) {
	engine := &fakeEngine{label: models.LabelProductive}
	suggester := &fakeSuggester{}
	svc := NewService(engine, suggester)

	input := "Preciso de ajuda com o sistema de login hoje"
	results, err := svc.ProcessMessages(context.Background(), []string{input})
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, models.LabelProductive, res.Label)
	assert.False(t, res.Skipped)
	assert.Equal(t, textnorm.Normalize(input), res.ProcessedText)

	// normalize -> vectorize -> classify exactly once each; the vectorizer
	// sees the normalized text, the suggester the original.
	require.Equal(t, []string{res.ProcessedText}, engine.vectorizeCalls)
	assert.Equal(t, 1, engine.classifyCalls)
	require.Len(t, suggester.calls, 1)
	assert.Equal(t, suggestCall{text: input, label: models.LabelProductive}, suggester.calls[0])
}

func TestProcessMessagesEmptyBatch(t *testing.T) {
	// No engine at all: an empty batch must still succeed.
	svc := NewService(nil, &fakeSuggester{})

	results, err := svc.ProcessMessages(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = svc.ProcessMessages(context.Background(), []string{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestProcessMessagesModelUnavailable(t *testing.T) {
	svc := NewService(nil, &fakeSuggester{})
	assert.False(t, svc.Ready())

	results, err := svc.ProcessMessages(context.Background(), []string{"texto qualquer"})
	assert.ErrorIs(t, err, models.ErrModelUnavailable)
	assert.Nil(t, results, "no partial result list on unavailable artifacts")
}

func TestProcessMessagesPreservesOrder(t *testing.T) {
	engine := &fakeEngine{label: models.LabelProductive}
	svc := NewService(engine, &fakeSuggester{})

	inputs := []string{
		"Ok",
		"Preciso de ajuda com o sistema de login agora",
		"Obrigado",
		"Relatório mensal anexado para revisão da equipe financeira",
	}
	results, err := svc.ProcessMessages(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))
	for i, res := range results {
		assert.Equal(t, inputs[i], res.OriginalText)
	}
	assert.True(t, results[0].Skipped)
	assert.True(t, results[2].Skipped)
	assert.False(t, results[1].Skipped)
	assert.False(t, results[3].Skipped)
}
