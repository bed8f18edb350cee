// Package typename normalizes generic type descriptor strings so that two
// differently formatted descriptors can be compared for equality.
//
// "Map<Key=std::string, Value=Vector<int>>" and
// "map< value=vector<int> , key=STD::STRING >" normalize to the same
// canonical form: identifiers are case-folded, whitespace is discarded, and
// named arguments are sorted by key. This is a normalization helper, not a
// strict grammar: malformed input degrades to best-effort output instead of
// returning an error.
package typename

import (
	"sort"
	"strings"
)

// IsWildcard reports whether name is a universal marker compatible with any
// type. The empty string, "*", "void", "auto" and "any" all count.
func IsWildcard(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "*", "void", "auto", "any":
		return true
	}
	return false
}

// Normalize returns the canonical form of a type descriptor.
// Already-canonical input is a no-op.
func Normalize(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}

	tokens := tokenize(trimmed)
	if len(tokens) == 0 {
		return strings.ToLower(trimmed)
	}

	p := &parser{tokens: tokens}
	segments := p.parseSegments("")
	if len(segments) == 0 {
		return strings.ToLower(trimmed)
	}

	return serializeSegments(segments)
}

// Compatible reports whether two descriptors name the same type.
// Either side being a wildcard matches anything.
func Compatible(a, b string) bool {
	at := strings.TrimSpace(a)
	bt := strings.TrimSpace(b)

	if at == bt {
		return true
	}
	if IsWildcard(at) || IsWildcard(bt) {
		return true
	}
	return Normalize(at) == Normalize(bt)
}

// -----------------------------------------------------------------------
// Tokenizer
// -----------------------------------------------------------------------

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokSymbol
)

type token struct {
	kind tokenKind
	val  string
}

func isIdentChar(ch byte) bool {
	return ch >= '0' && ch <= '9' ||
		ch >= 'A' && ch <= 'Z' ||
		ch >= 'a' && ch <= 'z' ||
		ch == '_' || ch == '.'
}

// tokenize splits a descriptor into lowercase identifiers and single-character
// symbols. "::" is folded into the surrounding identifier; anything it does
// not recognize is silently dropped.
func tokenize(value string) []token {
	var tokens []token
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		tokens = append(tokens, token{tokIdent, strings.ToLower(current.String())})
		current.Reset()
	}

	for i := 0; i < len(value); i++ {
		ch := value[i]

		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v' {
			flush()
			continue
		}
		if isIdentChar(ch) {
			current.WriteByte(ch)
			continue
		}
		if ch == ':' && i+1 < len(value) && value[i+1] == ':' {
			current.WriteString("::")
			i++
			continue
		}

		flush()

		switch ch {
		case '<', '>', ',', '=', '(', ')', '[', ']', '*':
			tokens = append(tokens, token{tokSymbol, string(ch)})
		}
	}

	flush()
	return tokens
}

// -----------------------------------------------------------------------
// Recursive-descent parser
// -----------------------------------------------------------------------

// expression is one parsed type term: a head identifier plus an optional
// argument list. "vector<int>" has head "vector" and one positional segment.
type expression struct {
	head string
	args []segment
}

// segment is one argument: positional (key empty) or key=value.
type segment struct {
	key   string
	value *expression
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) isSymbol(val string) bool {
	return p.pos < len(p.tokens) &&
		p.tokens[p.pos].kind == tokSymbol &&
		p.tokens[p.pos].val == val
}

// parseSegments consumes comma-separated segments until the closing symbol
// (or the end of input when closing is empty). Tokens that make no progress
// are skipped, so unbalanced input cannot loop forever.
func (p *parser) parseSegments(closing string) []segment {
	var segments []segment

	for p.pos < len(p.tokens) {
		if closing != "" && p.isSymbol(closing) {
			p.pos++
			break
		}

		start := p.pos
		seg := p.parseSegment()

		if p.pos == start {
			p.pos++
			continue
		}

		segments = append(segments, seg)

		if p.isSymbol(",") {
			p.pos++
			continue
		}
		if closing != "" && p.isSymbol(closing) {
			p.pos++
			break
		}
	}

	return segments
}

func (p *parser) parseSegment() segment {
	var seg segment

	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == tokIdent {
		if p.pos+1 < len(p.tokens) &&
			p.tokens[p.pos+1].kind == tokSymbol &&
			p.tokens[p.pos+1].val == "=" {
			seg.key = p.tokens[p.pos].val
			p.pos += 2
		}
	}

	seg.value = p.parseExpression()
	return seg
}

func (p *parser) parseExpression() *expression {
	expr := &expression{}

	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == tokIdent {
		expr.head = p.tokens[p.pos].val
		p.pos++
	}

	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == tokSymbol {
		var closing string
		switch p.tokens[p.pos].val {
		case "<":
			closing = ">"
		case "(":
			closing = ")"
		case "[":
			closing = "]"
		}
		if closing != "" {
			p.pos++
			expr.args = p.parseSegments(closing)
		}
	}

	return expr
}

// -----------------------------------------------------------------------
// Canonical serialization
// -----------------------------------------------------------------------

// serializeSegments renders positional arguments in order, then named
// arguments sorted by key as "key=value", all joined by ", ".
func serializeSegments(segments []segment) string {
	var positional []string
	type namedArg struct {
		key, val string
	}
	var named []namedArg

	for _, seg := range segments {
		if seg.value == nil {
			continue
		}
		rendered := serializeExpression(seg.value)
		if seg.key == "" {
			positional = append(positional, rendered)
		} else {
			named = append(named, namedArg{seg.key, rendered})
		}
	}

	sort.Slice(named, func(i, j int) bool { return named[i].key < named[j].key })

	parts := make([]string, 0, len(positional)+len(named))
	parts = append(parts, positional...)
	for _, n := range named {
		parts = append(parts, n.key+"="+n.val)
	}

	return strings.Join(parts, ", ")
}

func serializeExpression(expr *expression) string {
	if len(expr.args) == 0 {
		return expr.head
	}
	return expr.head + "<" + serializeSegments(expr.args) + ">"
}
