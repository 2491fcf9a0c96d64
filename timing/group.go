package timing

import (
	"strings"

	"ttrace/config"
	"ttrace/text"
)

// Grouping describes how block and phrase indexes are assigned to words.
// Splitter is only used for sentence grouping, when it is nil every word
// belongs to the first sentence.
type Grouping struct {
	Blocks   config.GroupingMode
	Phrases  config.GroupingMode
	Splitter *text.Splitter
}

// ParseGrouped is Parse with block and phrase indexes assigned according
// to requested grouping.
func ParseGrouped(source string, g Grouping) []WordTiming {
	cues := ParseCues(source)

	var sentences [][]int
	if g.Blocks == config.GroupingModeSentence || g.Phrases == config.GroupingModeSentence {
		sentences = sentenceIndexes(cues, g.Splitter)
	}

	var (
		result  []WordTiming
		ordinal int
	)
	for i, cue := range cues {
		words := cue.words()
		if len(words) == 0 {
			continue
		}
		for k, word := range words {
			result = append(result, WordTiming{
				Text:         word,
				StartSeconds: cue.Start,
				EndSeconds:   cue.End,
				WordIndex:    len(result),
				BlockIndex:   groupIndex(g.Blocks, ordinal, sentences, i, k),
				PhraseIndex:  groupIndex(g.Phrases, ordinal, sentences, i, k),
			})
		}
		ordinal++
	}
	return result
}

func groupIndex(mode config.GroupingMode, ordinal int, sentences [][]int, cue, word int) int {
	switch mode {
	case config.GroupingModeCue:
		return ordinal
	case config.GroupingModeSentence:
		return sentences[cue][word]
	default:
		return 0
	}
}

// sentenceIndexes detects sentences over complete text of all cues and
// returns sentence ordinal for every raw word of every cue. Trailing
// punctuation stripping may only drop the last raw word of a cue, so
// ordinals of the remaining words stay valid.
func sentenceIndexes(cues []Cue, splitter *text.Splitter) [][]int {
	texts := make([]string, 0, len(cues))
	for _, cue := range cues {
		texts = append(texts, cue.Text)
	}

	var ordinals []int
	sentence := 0
	for s := range splitter.Sentences(strings.Join(texts, " ")) {
		n := len(text.Words(s))
		if n == 0 {
			continue
		}
		for range n {
			ordinals = append(ordinals, sentence)
		}
		sentence++
	}

	result := make([][]int, len(cues))
	pos := 0
	for i, cue := range cues {
		result[i] = make([]int, len(text.Words(cue.Text)))
		for k := range result[i] {
			switch {
			case pos < len(ordinals):
				result[i][k] = ordinals[pos]
			case len(ordinals) > 0:
				result[i][k] = ordinals[len(ordinals)-1]
			}
			pos++
		}
	}
	return result
}
