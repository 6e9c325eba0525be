package textnorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDeterministic(t *testing.T) {
	inputs := []string{
		"Preciso de ajuda com o sistema de login, está retornando erro 500 para todos os usuários",
		"Obrigado pela atenção!",
		"",
		"   \t\n  ",
		"ação coração não çñü",
	}
	for _, input := range inputs {
		first := Normalize(input)
		second := Normalize(input)
		assert.Equal(t, first, second, "Normalize must be deterministic for %q", input)
	}
}

func TestNormalizeOutputAlphabet(t *testing.T) {
	out := Normalize("Atenção!!! Reunião às 14h30: papéis, códigos & 100% (urgente)")
	for _, r := range out {
		ok := (r >= 'a' && r <= 'z') || r == ' '
		assert.True(t, ok, "output %q contains unexpected rune %q", out, r)
	}
}

func TestNormalizeStopwordsAndPunctuationOnly(t *testing.T) {
	cases := []string{
		"de a o que e do da em um para com",
		"!!! ... ((( ))) [] {} \"\" ''",
		"DE A O QUE, e do; da! em? um (para) [com]",
		"123 456 7890",
	}
	for _, input := range cases {
		assert.Equal(t, "", Normalize(input), "input %q should normalize to empty", input)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize("   "))
}

func TestNormalizeDropsAccentedStopwordVariants(t *testing.T) {
	// "esta"/"está" are both in the stopword list; after folding, either
	// spelling matches the accent-free entry and is dropped.
	assert.Equal(t, "", Normalize("Está esta"))

	// "não" folds to "nao", which is not a stopword entry, so it survives.
	// This matches the preprocessing the artifacts were trained with.
	assert.Equal(t, "nao", Normalize("não"))
}

func TestNormalizeStemsAndPreservesOrder(t *testing.T) {
	// "obrigado" loses its verb suffix, "erro" and "login" are left alone.
	assert.Equal(t, "obrig erro login", Normalize("Obrigado, erro login"))
}

func TestNormalizeStripsDigitsAndEdgePunctuation(t *testing.T) {
	assert.Equal(t, "erro", Normalize("(erro123!?)"))
	assert.Equal(t, "erro erro", Normalize("'erro' \"erro\""))
}

func TestNormalizeCaseInsensitive(t *testing.T) {
	assert.Equal(t, Normalize("ERRO LOGIN"), Normalize("erro login"))
}

func TestStopwordSetEntriesAreLowercase(t *testing.T) {
	// Tokens are matched after lowercasing, so an uppercase entry could
	// never match anything.
	for w := range stopwordSet {
		assert.NotEmpty(t, w)
		assert.Equal(t, strings.ToLower(w), w)
	}
}
