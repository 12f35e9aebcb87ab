// Package dre provides a derivative-based regular expression engine for Go.
//
// dre compiles a pattern into a canonical, hash-consed regex representation
// and matches by Brzozowski/Antimirov-style derivatives: at each input byte
// the current regex is rewritten into its derivative, and acceptance is
// decided by whether the final regex is nullable. Canonical simplification
// plus hash-consing keeps derivative-equivalent regexes sharing a single id,
// and IsMatch memoizes transitions into a lazily-constructed DFA over a
// compressed alphabet (package alphabet), so a transition it has cached is
// never derived again. LookaheadLen does not use this cache; it derives
// every step afresh.
//
// Matching is anchored: IsMatch reports whether the entire input is in the
// pattern's language, not whether the pattern occurs somewhere inside it.
//
// Basic usage:
//
//	re, err := dre.Compile(`[ab]c`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.IsMatch([]byte("ac")) // true
//	re.IsMatch([]byte("xxac")) // false, not anchored to the whole input
//
// Patterns may end in a single named group called "stop", used to recover
// how many trailing bytes that group consumed once the whole input matches:
//
//	re := dre.MustCompile(`[abx]*(?P<stop>[xq]*y)`)
//	n, ok := re.LookaheadLen([]byte("axxxxxy")) // n == 1, ok == true
//
// Limitations: no unanchored search, no capture groups besides the single
// trailing "stop" group, byte-range character classes only (no Unicode
// property classes), and the surface syntax never mixes a pattern's own
// intersection/complement operators into regexp/syntax (those are only
// reachable by constructing ast.Table nodes directly).
package dre

import (
	"github.com/coregx/dre/ast"
	"github.com/coregx/dre/dfa"
	"github.com/coregx/dre/prefilter"
	"github.com/coregx/dre/rsyntax"
)

// Config tunes compilation and matching, the same shape as the teacher's
// meta.Config: a DefaultConfig constructor plus named fields a caller can
// override before calling CompileWithConfig.
type Config struct {
	// DFA tunes the lazy derivative-DFA driver's cache sizing and also
	// bounds the canonical ast.Table's node budget via DFA.MaxDFAStates
	// (DFA.MaxStates caps the driver's state cache; DFA.MaxDFAStates is the
	// table's node budget).
	DFA dfa.Config

	// EnablePrefilter controls whether a required-literal Aho-Corasick
	// prefilter is built at compile time. Disabling it never changes
	// IsMatch's result (prefilter.Prefilter is a pure accelerator); it only
	// trades away the O(n) pre-reject fast path.
	EnablePrefilter bool
}

// DefaultConfig returns the engine's default tuning.
func DefaultConfig() Config {
	return Config{
		DFA:             dfa.DefaultConfig(),
		EnablePrefilter: true,
	}
}

// Stats reports compile- and run-time counters for a Regex, useful for
// profiling cache growth without pulling in a logging dependency.
type Stats struct {
	// Nodes is the canonical ast.Table's current size and high-water mark.
	Nodes ast.Stats

	// PrefilterRejects counts IsMatch calls the prefilter alone resolved to
	// false, short-circuiting the derivative walk.
	PrefilterRejects uint64

	// DerivativeWalks counts IsMatch calls that ran the full byte-by-byte
	// derivative walk (either no prefilter, or the prefilter could not rule
	// the input out).
	DerivativeWalks uint64
}

// Regex is a compiled pattern: a canonical ast.Table, the lazy DFA driver
// over it, and (optionally) a prefilter accelerator. A Regex is not safe for
// concurrent use by multiple goroutines (see the package's concurrency
// model: single-threaded, thread-compatible, not thread-safe).
type Regex struct {
	pattern string

	table  *ast.Table
	driver *dfa.Driver
	pf     *prefilter.Prefilter

	root ast.ID

	hasStop bool
	prefix  ast.ID
	stop    ast.ID

	prefilterRejects uint64
	derivativeWalks  uint64
}

// Compile compiles pattern using DefaultConfig.
//
// Syntax is the Perl dialect of regexp/syntax, restricted to byte-range
// semantics: a pattern may end in a single named group `(?P<stop>...)` as
// its final concatenation term, but no other capture groups, backreferences,
// word boundaries, or runes above 0xFF are accepted.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles pattern and panics if it fails.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("dre: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles pattern with a caller-supplied Config.
func CompileWithConfig(pattern string, cfg Config) (*Regex, error) {
	if err := cfg.DFA.Validate(); err != nil {
		return nil, err
	}

	tableBudget := cfg.DFA.MaxDFAStates
	tb := ast.NewTable(tableBudget)

	res, err := rsyntax.Lower(pattern, tb)
	if err != nil {
		return nil, err
	}

	re := &Regex{
		pattern: pattern,
		table:   tb,
		driver:  dfa.New(tb, cfg.DFA),
		root:    res.Root,
		hasStop: res.HasStop,
		prefix:  res.Prefix,
		stop:    res.Stop,
	}

	if cfg.EnablePrefilter {
		re.pf = prefilter.Build(tb, res.Root)
	}

	return re, nil
}

// IsMatch reports whether input, taken as a whole, is in the language of the
// compiled pattern. Matching is anchored at both ends.
func (r *Regex) IsMatch(input []byte) bool {
	if r.pf != nil && !r.pf.MayMatch(input) {
		r.prefilterRejects++
		return false
	}
	r.derivativeWalks++
	return r.driver.IsMatch(r.root, input)
}

// HasLookahead reports whether the pattern ends in a trailing "stop" group,
// i.e. whether LookaheadLen may be called on it.
func (r *Regex) HasLookahead() bool {
	return r.hasStop
}

// LookaheadLen reports the byte length of the trailing "stop" group's match
// against input, provided the whole input matches the pattern. Returns
// (0, false) if the whole input does not match.
//
// LookaheadLen panics if the pattern was not compiled with a trailing "stop"
// group; check HasLookahead first if that is not statically known.
func (r *Regex) LookaheadLen(input []byte) (int, bool) {
	if !r.hasStop {
		panic("dre: LookaheadLen called on a pattern with no trailing stop group")
	}
	return dfa.LookaheadLen(r.table, r.prefix, r.stop, input)
}

// Stats returns a snapshot of this Regex's compile- and run-time counters.
func (r *Regex) Stats() Stats {
	return Stats{
		Nodes:            r.table.Stats(),
		PrefilterRejects: r.prefilterRejects,
		DerivativeWalks:  r.derivativeWalks,
	}
}

// String returns the source pattern used to compile the Regex.
func (r *Regex) String() string {
	return r.pattern
}
