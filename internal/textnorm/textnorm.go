// Package textnorm implements the deterministic text normalization applied to
// email bodies before TF-IDF vectorization: lowercasing, accent folding,
// punctuation and digit removal, Portuguese stopword removal, and Portuguese
// suffix-stripping stemming. The exact same transform is used at training
// time and at inference time.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/portuguese"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// edgePunctuation is the fixed set stripped from token boundaries after
// accent folding.
const edgePunctuation = ".,;!?\"'()[]{}"

// asciiFolder decomposes accented characters and drops their combining
// marks, so "ação" becomes "acao". Any non-ASCII remnants are removed by the
// letter filter in cleanToken.
var asciiFolder = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalize is a pure function: identical input always yields identical
// output. Tokens are processed in order; a token that is emptied by cleanup
// or matches the stopword set is dropped. The result is the space-joined
// sequence of stemmed tokens, or the empty string when nothing survives.
func Normalize(text string) string {
	tokens := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		cleaned := cleanToken(token)
		if cleaned == "" {
			continue
		}
		if _, stop := stopwordSet[cleaned]; stop {
			continue
		}
		out = append(out, stem(cleaned))
	}
	return strings.Join(out, " ")
}

// cleanToken folds the token to ASCII, strips edge punctuation, and deletes
// every remaining character outside [a-z].
func cleanToken(token string) string {
	folded, _, err := transform.String(asciiFolder, token)
	if err != nil {
		// Malformed input: fall back to the raw token, the letter filter
		// below still guarantees an [a-z]-only result.
		folded = token
	}
	folded = strings.Trim(folded, edgePunctuation)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stem(token string) string {
	env := snowballstem.NewEnv(token)
	portuguese.Stem(env)
	return env.Current()
}
