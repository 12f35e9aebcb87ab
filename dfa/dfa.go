// Package dfa implements the lazy (state,class)->state transition driver
// over a canonical ast.Table (spec component C6).
//
// A "state" here is simply the ast.ID of the current residual regex: the
// hash-consed Table already guarantees two equal residuals share an id, so
// the driver's cache is keyed on ast.ID directly instead of a separately
// allocated DFA-state numbering. The cache is a map from ast.ID to the
// state's class table and transition slots.
package dfa

import (
	"github.com/coregx/dre/alphabet"
	"github.com/coregx/dre/ast"
	"github.com/coregx/dre/deriv"
	"github.com/coregx/dre/internal/asciiscan"
)

// noTarget marks a transition slot that has not been filled in yet. ast.ID
// is dense starting at 0; a table would need to intern four billion nodes
// for this to collide with a real id.
const noTarget = ast.ID(^uint32(0))

// Driver runs the lazy derivative DFA over one ast.Table.
type Driver struct {
	table  *ast.Table
	alpha  *alphabet.Cache
	cfg    Config
	states map[ast.ID]*stateEntry
}

type stateEntry struct {
	classes *alphabet.ByteClasses
	trans   []ast.ID
}

// New returns a Driver over table using cfg for cache tuning.
func New(table *ast.Table, cfg Config) *Driver {
	return &Driver{
		table:  table,
		alpha:  alphabet.NewCache(table),
		cfg:    cfg,
		states: make(map[ast.ID]*stateEntry),
	}
}

func (d *Driver) entry(id ast.ID) *stateEntry {
	if e, ok := d.states[id]; ok {
		return e
	}
	classes := d.alpha.Partition(id)
	trans := make([]ast.ID, classes.NumClasses())
	for i := range trans {
		trans[i] = noTarget
	}
	e := &stateEntry{classes: classes, trans: trans}
	if d.cfg.MaxStates == 0 || uint32(len(d.states)) < d.cfg.MaxStates {
		d.states[id] = e
	}
	return e
}

// Step returns the state reached from id after consuming byte b, filling
// and caching the transition the first time it is requested.
func (d *Driver) Step(id ast.ID, b byte) ast.ID {
	e := d.entry(id)
	cls := e.classes.Get(b)
	if e.trans[cls] != noTarget {
		return e.trans[cls]
	}
	next := deriv.Derivative(d.table, id, b)
	e.trans[cls] = next
	return next
}

// stepASCII is Step's twin for a byte already known to be < 0x80: it reads
// the class index from ByteClasses' 128-entry table instead of the full
// 256-entry one, trading a smaller, more cache-local lookup on the common
// pure-ASCII input path for no behavior change.
func (d *Driver) stepASCII(id ast.ID, b byte) ast.ID {
	e := d.entry(id)
	cls := e.classes.GetASCII(b)
	if e.trans[cls] != noTarget {
		return e.trans[cls]
	}
	next := deriv.Derivative(d.table, id, b)
	e.trans[cls] = next
	return next
}

// IsMatch reports whether input, taken as a whole, is in the language
// rooted at start. Matching is anchored at both ends: a regex either
// consumes the entire input and is nullable there, or it does not match.
//
// A pure-ASCII input (the common case for log lines, identifiers, and most
// text) is detected once up front via internal/asciiscan and routed through
// stepASCII for the whole walk.
func (d *Driver) IsMatch(start ast.ID, input []byte) bool {
	cur := start
	if asciiscan.IsASCII(input) {
		for _, b := range input {
			cur = d.stepASCII(cur, b)
			if cur == ast.EmptyID {
				return false
			}
		}
		return d.table.Nullable(cur)
	}
	for _, b := range input {
		cur = d.Step(cur, b)
		if cur == ast.EmptyID {
			return false
		}
	}
	return d.table.Nullable(cur)
}
