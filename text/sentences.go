package text

import (
	"iter"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Splitter breaks text into sentences. Nil Splitter is valid and treats
// whole input as a single sentence.
type Splitter struct {
	*sentences.DefaultSentenceTokenizer
}

// NewSplitter returns sentence splitter for requested language or nil when
// language is not supported.
func NewSplitter(lang language.Tag, log *zap.Logger) *Splitter {
	base, confidence := lang.Base()
	if confidence == language.No {
		log.Warn("Unable to determine language base", zap.Stringer("tag", lang), zap.Stringer("base", base))
		return nil
	}
	if en, _ := language.English.Base(); base != en {
		log.Warn("Unable to find suitable sentence tokenizer model, turning off sentence splitting",
			zap.Stringer("language", lang), zap.String("name", display.English.Languages().Name(lang)))
		return nil
	}
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		log.Warn("Unable to load sentences tokenizer data", zap.Stringer("tag", lang), zap.Error(err))
		return nil
	}
	return &Splitter{tokenizer}
}

// Split returns slice of sentences. Spaces between sentences stay with
// preceding sentence, so concatenating results gives back the input.
func (s *Splitter) Split(in string) []string {
	var result []string
	for sentence := range s.Sentences(in) {
		result = append(result, sentence)
	}
	return result
}

// Sentences returns an iterator over sentences.
func (s *Splitter) Sentences(in string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if s == nil {
			yield(in)
			return
		}

		parts := s.Tokenize(in)
		for i := 0; i < len(parts)-1; i++ {
			text := parts[i].Text

			// tokenizer attaches sentence trailing spaces to the next sentence
			// - move them back
			next := parts[i+1].Text
			for idx, sym := range next {
				if !unicode.IsSpace(sym) {
					text = text + next[0:idx]
					parts[i+1].Text = next[idx:]
					break
				}
			}
			if !yield(text) {
				return
			}
		}
		if len(parts) > 0 {
			yield(parts[len(parts)-1].Text)
		}
	}
}
