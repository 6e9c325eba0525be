package models

// Label is the internal classification label produced by the classifier
// artifact. The two known values cover the trained model; anything else
// coming out of a substituted artifact is passed through verbatim.
type Label string

const (
	LabelProductive   Label = "productive"
	LabelUnproductive Label = "unproductive"
)

// DisplayName maps a label to the localized string used in API responses.
// Unknown labels are returned unchanged.
func (l Label) DisplayName() string {
	switch l {
	case LabelProductive:
		return "Produtivo"
	case LabelUnproductive:
		return "Improdutivo"
	}
	return string(l)
}

// Result is the per-message outcome of the classification pipeline. One is
// assembled per input message, in input order, and only lives for the
// duration of the response.
type Result struct {
	OriginalText  string
	Label         Label
	ProcessedText string // normalized text; empty when Skipped is set
	Skipped       bool   // true when the short-message rule bypassed the model
	Suggestion    string
}
