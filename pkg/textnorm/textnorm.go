package textnorm

import (
	"regexp"
	"strings"
)

var (
	reNonWord    = regexp.MustCompile(`\W`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// stopwords is the English stopword set filtered out during normalization.
// The set mirrors the observable output of the tokenizer the pipeline
// historically delegated to.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
		"you", "your", "yours", "yourself", "yourselves",
		"he", "him", "his", "himself", "she", "her", "hers", "herself",
		"it", "its", "itself", "they", "them", "their", "theirs", "themselves",
		"what", "which", "who", "whom", "this", "that", "these", "those",
		"am", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "having", "do", "does", "did", "doing",
		"a", "an", "the", "and", "but", "if", "or", "because", "as",
		"until", "while", "of", "at", "by", "for", "with", "about",
		"against", "between", "into", "through", "during", "before",
		"after", "above", "below", "to", "from", "up", "down", "in",
		"out", "on", "off", "over", "under", "again", "further", "then",
		"once", "here", "there", "when", "where", "why", "how", "all",
		"any", "both", "each", "few", "more", "most", "other", "some",
		"such", "no", "nor", "not", "only", "own", "same", "so", "than",
		"too", "very", "s", "t", "can", "will", "just", "don", "should",
		"now",
	} {
		stopwords[w] = struct{}{}
	}
}

// Clean lowercases the text, replaces non-word characters with spaces and
// collapses runs of whitespace.
func Clean(text string) string {
	text = reNonWord.ReplaceAllString(text, " ")
	text = reWhitespace.ReplaceAllString(text, " ")
	return strings.ToLower(strings.TrimSpace(text))
}

// Normalize cleans the review text and drops English stopwords, returning
// the space-joined remainder. This is the form sent to the extraction
// service and persisted as cleaned_review_content.
func Normalize(text string) string {
	cleaned := Clean(text)
	if cleaned == "" {
		return ""
	}

	fields := strings.Fields(cleaned)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := stopwords[f]; ok {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
