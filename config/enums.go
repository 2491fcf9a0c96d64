package config

//go:generate go tool go-enum --marshal --names --mustparse

// Which current container, if any, is scrolled into view on every highlight
// transition.
// ENUM(off, block, phrase, word)
type ScrollMode int

// How grouping indexes are assigned to parsed word timings when no explicit
// selector is configured for the level.
// ENUM(none, cue, sentence)
type GroupingMode int
