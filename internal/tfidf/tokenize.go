package tfidf

import (
	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
)

var (
	tokenizer       analysis.Tokenizer
	lowercaseFilter analysis.TokenFilter
)

func init() {
	tokenizer = unicode.NewUnicodeTokenizer()
	lowercaseFilter = lowercase.NewLowerCaseFilter()
}

// Tokenize splits text into lowercase word tokens using Bleve's unicode
// tokenizer, so the vector space segments text the same way the rest of the
// ecosystem's keyword indexes do. No stemming: "pizza" and "pizzas" stay
// distinct terms.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	stream := tokenizer.Tokenize([]byte(text))
	stream = lowercaseFilter.Filter(stream)
	terms := make([]string, 0, len(stream))
	for _, tok := range stream {
		terms = append(terms, string(tok.Term))
	}
	return terms
}
