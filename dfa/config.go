package dfa

import "fmt"

// Config tunes the lazy DFA driver, the same shape as dfa/lazy.Config:
// a DefaultConfig constructor, Validate, and fluent With* setters that
// return a modified copy.
type Config struct {
	// MaxStates caps how many distinct node ids the driver will cache
	// transition tables for before it stops growing the cache (existing
	// entries remain valid; new states are still computed, just not
	// memoized). Zero means unbounded.
	MaxStates uint32

	// MaxDFAStates is not read by the Driver. The root dre package passes it
	// to ast.NewTable as the ceiling on interned nodes (zero means unbounded
	// there), so it bounds how many distinct residual states can exist.
	MaxDFAStates uint32
}

// DefaultConfig returns the engine's default tuning: generous limits
// suitable for interactive use, no artificial ceilings for typical patterns.
func DefaultConfig() Config {
	return Config{
		MaxStates:    1 << 20,
		MaxDFAStates: 1 << 20,
	}
}

// Validate reports whether the configuration is internally consistent.
func (c Config) Validate() error {
	if c.MaxStates == 0 && c.MaxDFAStates == 0 {
		return fmt.Errorf("dfa: Config: MaxStates and MaxDFAStates cannot both be zero (use DefaultConfig for unbounded-ish defaults)")
	}
	return nil
}

// WithMaxStates returns a copy of c with MaxStates set to n.
func (c Config) WithMaxStates(n uint32) Config {
	c.MaxStates = n
	return c
}

// WithMaxDFAStates returns a copy of c with MaxDFAStates set to n.
func (c Config) WithMaxDFAStates(n uint32) Config {
	c.MaxDFAStates = n
	return c
}
