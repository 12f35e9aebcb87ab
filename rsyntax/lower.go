// Package rsyntax lowers the subset of Go's regexp/syntax AST that spec.md
// §4.5 accepts into canonical ast nodes (spec component C5).
//
// Surface parsing itself is delegated entirely to the stdlib
// regexp/syntax parser (Perl dialect), the same off-the-shelf parser the
// teacher's own nfa.Compiler consumes; this package only does the
// construct-by-construct translation into ast's smart constructors.
package rsyntax

import (
	"regexp/syntax"

	"github.com/coregx/dre/ast"
)

// defaultMaxDepth bounds the lowering recursion the same way
// nfa.Compiler.MaxRecursionDepth bounds Thompson compilation: lowering walks
// the *parsed* syntax tree once, whose depth tracks pattern nesting, not
// pattern length, so plain recursion (guarded) is appropriate here even
// though deriv's DAG walk is not.
const defaultMaxDepth = 1000

// Result is the outcome of lowering one pattern.
type Result struct {
	// Root is the canonical node to compile into a DFA.
	Root ast.ID
	// HasStop reports whether the pattern ends in a "stop" capture.
	HasStop bool
	// Prefix and Stop are the split components when HasStop is true.
	Prefix, Stop ast.ID
}

type lowerer struct {
	pattern string
	table   *ast.Table
	depth   int
}

// Lower parses pattern with regexp/syntax and lowers it into table.
func Lower(pattern string, table *ast.Table) (res *Result, err error) {
	re, perr := syntax.Parse(pattern, syntax.Perl)
	if perr != nil {
		return nil, &ParseError{Pattern: pattern, Err: perr}
	}

	defer func() {
		if r := recover(); r != nil {
			if oe, ok := r.(*ast.OverflowError); ok {
				err = oe
				return
			}
			panic(r)
		}
	}()

	l := &lowerer{pattern: pattern, table: table}
	return l.lowerTop(re)
}

// lowerTop recognizes the one shape spec.md §4.5 allows a "stop" capture to
// appear in: the final term of a top-level concatenation, or the whole
// pattern by itself.
func (l *lowerer) lowerTop(re *syntax.Regexp) (*Result, error) {
	if re.Op == syntax.OpCapture && re.Name == "stop" {
		stopID, err := l.lower(re.Sub[0])
		if err != nil {
			return nil, err
		}
		root := l.table.Lookahead(stopID)
		return &Result{Root: root, HasStop: true, Prefix: ast.EpsilonID, Stop: stopID}, nil
	}

	if re.Op == syntax.OpConcat && len(re.Sub) > 0 {
		last := re.Sub[len(re.Sub)-1]
		if last.Op == syntax.OpCapture && last.Name == "stop" {
			stopID, err := l.lower(last.Sub[0])
			if err != nil {
				return nil, err
			}
			prefixID := ast.EpsilonID
			for _, s := range re.Sub[:len(re.Sub)-1] {
				id, err := l.lower(s)
				if err != nil {
					return nil, err
				}
				prefixID = l.table.Concat(prefixID, id)
			}
			root := l.table.Concat(prefixID, l.table.Lookahead(stopID))
			return &Result{Root: root, HasStop: true, Prefix: prefixID, Stop: stopID}, nil
		}
	}

	root, err := l.lower(re)
	if err != nil {
		return nil, err
	}
	return &Result{Root: root}, nil
}

func (l *lowerer) lower(re *syntax.Regexp) (ast.ID, error) {
	l.depth++
	if l.depth > defaultMaxDepth {
		return ast.EmptyID, &UnsupportedSyntaxError{
			Pattern: l.pattern, Construct: "nesting depth",
			Reason: "pattern nests deeper than the lowering recursion limit",
		}
	}
	defer func() { l.depth-- }()

	switch re.Op {
	case syntax.OpNoMatch:
		return ast.EmptyID, nil
	case syntax.OpEmptyMatch:
		return ast.EpsilonID, nil
	case syntax.OpLiteral:
		return l.lowerLiteral(re)
	case syntax.OpCharClass:
		return l.lowerCharClass(re.Rune)
	case syntax.OpAnyCharNotNL:
		return l.table.Byte([]ast.Range{{Lo: 0x00, Hi: 0x09}, {Lo: 0x0B, Hi: 0xFF}}), nil
	case syntax.OpAnyChar:
		return l.table.FullByte(), nil
	case syntax.OpConcat:
		return l.lowerConcat(re.Sub)
	case syntax.OpAlternate:
		return l.lowerAlternate(re.Sub)
	case syntax.OpStar:
		sub, err := l.lower(re.Sub[0])
		if err != nil {
			return ast.EmptyID, err
		}
		return l.table.Star(sub), nil
	case syntax.OpPlus:
		sub, err := l.lower(re.Sub[0])
		if err != nil {
			return ast.EmptyID, err
		}
		return l.table.Concat(sub, l.table.Star(sub)), nil
	case syntax.OpQuest:
		sub, err := l.lower(re.Sub[0])
		if err != nil {
			return ast.EmptyID, err
		}
		return l.table.Or([]ast.ID{ast.EpsilonID, sub}), nil
	case syntax.OpRepeat:
		return l.lowerRepeat(re)
	case syntax.OpBeginText, syntax.OpEndText, syntax.OpBeginLine, syntax.OpEndLine:
		// Whole-input matching is already anchored at both ends; an
		// explicit ^/$ adds no further constraint.
		return ast.EpsilonID, nil
	case syntax.OpCapture:
		reason := "only a single trailing group named \"stop\" is supported"
		if re.Name == "" {
			reason = "numbered capture groups are not supported, only a trailing \"stop\""
		}
		return ast.EmptyID, &UnsupportedSyntaxError{Pattern: l.pattern, Construct: "capture group", Reason: reason}
	case syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return ast.EmptyID, &UnsupportedSyntaxError{
			Pattern: l.pattern, Construct: "word boundary",
			Reason: "requires lookbehind context the byte derivative has no representation for",
		}
	default:
		return ast.EmptyID, &UnsupportedSyntaxError{
			Pattern: l.pattern, Construct: re.Op.String(),
			Reason: "not a byte-range construct this engine lowers",
		}
	}
}

func (l *lowerer) lowerLiteral(re *syntax.Regexp) (ast.ID, error) {
	id := ast.EpsilonID
	fold := re.Flags&syntax.FoldCase != 0
	for _, r := range re.Rune {
		if r > 0xFF {
			return ast.EmptyID, &UnsupportedSyntaxError{
				Pattern: l.pattern, Construct: "non-byte literal",
				Reason: "only byte-range (0x00-0xFF) semantics are supported",
			}
		}
		b := byte(r)
		var bid ast.ID
		if fold && isASCIILetter(b) {
			bid = l.table.Or([]ast.ID{l.table.Byte([]ast.Range{{Lo: b, Hi: b}}), l.table.Byte([]ast.Range{{Lo: swapCase(b), Hi: swapCase(b)}})})
		} else {
			bid = l.table.Byte([]ast.Range{{Lo: b, Hi: b}})
		}
		id = l.table.Concat(id, bid)
	}
	return id, nil
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func swapCase(b byte) byte {
	switch {
	case b >= 'a' && b <= 'z':
		return b - ('a' - 'A')
	case b >= 'A' && b <= 'Z':
		return b + ('a' - 'A')
	default:
		return b
	}
}

func (l *lowerer) lowerCharClass(runes []rune) (ast.ID, error) {
	ranges := make([]ast.Range, 0, len(runes)/2)
	for i := 0; i+1 < len(runes); i += 2 {
		lo, hi := runes[i], runes[i+1]
		if lo > 0xFF || hi > 0xFF {
			return ast.EmptyID, &UnsupportedSyntaxError{
				Pattern: l.pattern, Construct: "non-byte character class",
				Reason: "only byte-range (0x00-0xFF) semantics are supported",
			}
		}
		ranges = append(ranges, ast.Range{Lo: byte(lo), Hi: byte(hi)})
	}
	return l.table.Byte(ranges), nil
}

func (l *lowerer) lowerConcat(subs []*syntax.Regexp) (ast.ID, error) {
	id := ast.EpsilonID
	for _, s := range subs {
		sid, err := l.lower(s)
		if err != nil {
			return ast.EmptyID, err
		}
		id = l.table.Concat(id, sid)
	}
	return id, nil
}

func (l *lowerer) lowerAlternate(subs []*syntax.Regexp) (ast.ID, error) {
	ids := make([]ast.ID, len(subs))
	for i, s := range subs {
		sid, err := l.lower(s)
		if err != nil {
			return ast.EmptyID, err
		}
		ids[i] = sid
	}
	return l.table.Or(ids), nil
}

func (l *lowerer) lowerRepeat(re *syntax.Regexp) (ast.ID, error) {
	x, err := l.lower(re.Sub[0])
	if err != nil {
		return ast.EmptyID, err
	}

	required := ast.EpsilonID
	for i := 0; i < re.Min; i++ {
		required = l.table.Concat(required, x)
	}

	if re.Max == -1 {
		return l.table.Concat(required, l.table.Star(x)), nil
	}

	tail := ast.EpsilonID
	for i := 0; i < re.Max-re.Min; i++ {
		tail = l.table.Or([]ast.ID{ast.EpsilonID, l.table.Concat(x, tail)})
	}
	return l.table.Concat(required, tail), nil
}
