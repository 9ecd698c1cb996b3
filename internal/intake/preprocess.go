package intake

import (
	"strings"
)

// maxEmbedWords caps the text handed to the embedding model; MiniLM attends
// to roughly this many tokens and silently ignores the rest anyway.
const maxEmbedWords = 512

// Clean lowercases text, replaces anything that is not a letter with a space,
// and collapses whitespace runs. The embedding model scores word content;
// digits and punctuation only add tokenizer noise.
func Clean(text string) string {
	text = strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(text))
	wasSpace := false
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			wasSpace = false
		default:
			if !wasSpace {
				b.WriteByte(' ')
				wasSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// TruncateWords returns text capped to maxWords whitespace-separated words.
// Text at or under the cap is returned unchanged.
func TruncateWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ")
}

// Preprocess produces the text actually handed to the embedder: cleaned and
// word-capped. Queries and documents must both pass through here so they
// land in the same vector space.
func Preprocess(text string) string {
	return TruncateWords(Clean(text), maxEmbedWords)
}
