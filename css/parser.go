// Package css compiles subset of CSS selectors used to point at block and
// phrase containers of transcripts.
package css

import (
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// ErrUnsupported is returned for selector syntax outside of supported subset.
var ErrUnsupported = errors.New("unsupported selector")

// Parser compiles selector strings.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new selector parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

type lexer struct {
	*css.Lexer
}

func (l *lexer) next() (css.TokenType, []byte) {
	tt, data := l.Next()
	// lexer reuses its buffer
	return tt, append([]byte(nil), data...)
}

// skipSpace returns next non whitespace token.
func (l *lexer) skipSpace() (css.TokenType, []byte) {
	for {
		tt, data := l.next()
		if tt != css.WhitespaceToken {
			return tt, data
		}
	}
}

type pending int

const (
	pendingNone pending = iota
	pendingDescendant
	pendingChild
)

// groupBuilder accumulates compounds of a single comma separated
// alternative.
type groupBuilder struct {
	compounds []Selector
	combs     []Combinator
	cur       *Selector
	pend      pending
}

func (b *groupBuilder) compound() *Selector {
	if b.cur == nil {
		if len(b.compounds) > 0 {
			comb := Descendant
			if b.pend == pendingChild {
				comb = Child
			}
			b.combs = append(b.combs, comb)
		}
		b.cur, b.pend = &Selector{}, pendingNone
	}
	return b.cur
}

func (b *groupBuilder) finishCompound() {
	if b.cur != nil {
		b.compounds = append(b.compounds, *b.cur)
		b.cur = nil
	}
}

func (b *groupBuilder) selector() (Selector, error) {
	b.finishCompound()
	if len(b.compounds) == 0 {
		return Selector{}, fmt.Errorf("empty selector: %w", ErrUnsupported)
	}
	if b.pend == pendingChild {
		return Selector{}, fmt.Errorf("dangling child combinator: %w", ErrUnsupported)
	}
	for i := 1; i < len(b.compounds); i++ {
		b.compounds[i].Ancestor = &b.compounds[i-1]
		b.compounds[i].Combinator = b.combs[i-1]
	}
	sel := b.compounds[len(b.compounds)-1]
	*b = groupBuilder{}
	return sel, nil
}

// ParseSelector compiles selector group. Supported: type, "*", ".class",
// "#id", "[attr]", "[attr=value]", "[attr~=value]", descendant and ">"
// combinators and "," lists. Empty input results in empty group.
func (p *Parser) ParseSelector(raw string) (Group, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var (
		l     = &lexer{Lexer: css.NewLexer(parse.NewInputString(raw))}
		group Group
		b     groupBuilder
	)

	for {
		tt, data := l.next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("unable to lex selector %q: %w", raw, err)
			}
			sel, err := b.selector()
			if err != nil {
				return nil, fmt.Errorf("bad selector %q: %w", raw, err)
			}
			group = append(group, sel)
			p.log.Debug("Compiled selector", zap.String("raw", raw), zap.Stringer("selector", group))
			return group, nil

		case css.WhitespaceToken:
			if b.cur != nil {
				b.finishCompound()
				b.pend = pendingDescendant
			}

		case css.CommaToken:
			sel, err := b.selector()
			if err != nil {
				return nil, fmt.Errorf("bad selector %q: %w", raw, err)
			}
			group = append(group, sel)

		case css.IdentToken:
			c := b.compound()
			if c.Element != "" || c.ID != "" || len(c.Classes) > 0 || len(c.Attrs) > 0 {
				return nil, fmt.Errorf("bad selector %q: misplaced element name %q: %w", raw, data, ErrUnsupported)
			}
			c.Element = strings.ToLower(string(data))

		case css.HashToken:
			b.compound().ID = string(data[1:])

		case css.DelimToken:
			switch data[0] {
			case '*':
				c := b.compound()
				if c.Element != "" {
					return nil, fmt.Errorf("bad selector %q: misplaced '*': %w", raw, ErrUnsupported)
				}
				c.Element = "*"
			case '.':
				tt, name := l.next()
				if tt != css.IdentToken {
					return nil, fmt.Errorf("bad selector %q: class name expected: %w", raw, ErrUnsupported)
				}
				c := b.compound()
				c.Classes = append(c.Classes, string(name))
			case '>':
				if b.cur == nil && len(b.compounds) == 0 {
					return nil, fmt.Errorf("bad selector %q: leading child combinator: %w", raw, ErrUnsupported)
				}
				if b.pend == pendingChild {
					return nil, fmt.Errorf("bad selector %q: repeated child combinator: %w", raw, ErrUnsupported)
				}
				b.finishCompound()
				b.pend = pendingChild
			default:
				return nil, fmt.Errorf("bad selector %q: symbol %q: %w", raw, data, ErrUnsupported)
			}

		case css.LeftBracketToken:
			attr, err := parseAttr(l)
			if err != nil {
				return nil, fmt.Errorf("bad selector %q: %w", raw, err)
			}
			c := b.compound()
			c.Attrs = append(c.Attrs, attr)

		default:
			return nil, fmt.Errorf("bad selector %q: token %s %q: %w", raw, tt, data, ErrUnsupported)
		}
	}
}

// parseAttr parses attribute selector after opening bracket.
func parseAttr(l *lexer) (AttrMatch, error) {
	tt, name := l.skipSpace()
	if tt != css.IdentToken {
		return AttrMatch{}, fmt.Errorf("attribute name expected: %w", ErrUnsupported)
	}
	attr := AttrMatch{Name: string(name)}

	tt, data := l.skipSpace()
	switch {
	case tt == css.RightBracketToken:
		return attr, nil
	case tt == css.DelimToken && data[0] == '=':
		attr.Op = AttrEquals
	case tt == css.IncludeMatchToken:
		attr.Op = AttrIncludes
	default:
		return AttrMatch{}, fmt.Errorf("attribute operation %q: %w", data, ErrUnsupported)
	}

	tt, data = l.skipSpace()
	switch tt {
	case css.StringToken:
		attr.Value = unquote(string(data))
	case css.IdentToken, css.NumberToken:
		attr.Value = string(data)
	default:
		return AttrMatch{}, fmt.Errorf("attribute value expected: %w", ErrUnsupported)
	}

	if tt, _ := l.skipSpace(); tt != css.RightBracketToken {
		return AttrMatch{}, fmt.Errorf("unterminated attribute selector: %w", ErrUnsupported)
	}
	return attr, nil
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
