// Package text provides sentence-level statistics for extracted content.
package text

import (
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type Splitter struct {
	*sentences.DefaultSentenceTokenizer
}

// NewSplitter returns a sentence splitter for the given language. Only an
// English training model ships with the tokenizer library; for anything else
// we return nil and callers fall back to a rough terminator count.
func NewSplitter(lang language.Tag, log *zap.Logger) *Splitter {
	base, confidence := lang.Base()
	if confidence == language.No || base.String() != "en" {
		log.Warn("No sentence tokenizer model for language, using rough sentence counting", zap.Stringer("language", lang))
		return nil
	}
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		log.Warn("Unable to load sentence tokenizer data", zap.Error(err))
		return nil
	}
	return &Splitter{tok}
}

// SentenceCount counts sentences in the text. Nil receiver is valid and
// degrades to counting terminator runs.
func (s *Splitter) SentenceCount(text string) int {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return 0
	}
	if s == nil || s.DefaultSentenceTokenizer == nil {
		return roughSentenceCount(text)
	}
	return len(s.Tokenize(text))
}

func roughSentenceCount(text string) int {
	count := 0
	inRun := false
	for _, r := range text {
		switch r {
		case '.', '!', '?', '…':
			if !inRun {
				count++
			}
			inRun = true
		default:
			inRun = false
		}
	}
	if count == 0 {
		count = 1
	}
	return count
}
