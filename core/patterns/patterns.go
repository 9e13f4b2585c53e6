// Package patterns provides the fixed library of command signatures,
// termination carve-outs and allowed fetch destinations used by the gate.
//
// Every expression is compiled once when a Library is built. A pattern that
// fails to compile is a programming error and panics at construction time.
package patterns

import (
	"regexp"
	"strings"
	"sync"
)

// Class groups signatures by the policy concern they serve.
type Class string

const (
	// ClassDestructive marks irreversible filesystem/OS commands.
	ClassDestructive Class = "destructive"
	// ClassTermination marks ad-hoc process termination commands.
	ClassTermination Class = "termination"
	// ClassCarveOut marks narrow exceptions to termination signatures.
	ClassCarveOut Class = "carve-out"
)

// Signature is a named, compiled matcher.
type Signature struct {
	// Name is the stable identifier reported in verdict reasons.
	Name string
	// Class is the policy concern this signature belongs to.
	Class Class
	// Description is a short human-readable explanation.
	Description string

	re *regexp.Regexp
}

// Match reports whether s matches the signature.
func (s *Signature) Match(text string) bool {
	return s.re.MatchString(text)
}

// Pattern returns the source expression.
func (s *Signature) Pattern() string {
	return s.re.String()
}

// Options tunes the literal constants of the library.
type Options struct {
	// MaxPIDDigits is the longest numeric pid that is still carved out.
	MaxPIDDigits int
	// MinPatternLength is the shortest quoted pkill/pgrep pattern that is
	// considered specific enough to be carved out.
	MinPatternLength int
	// ExtraAllowedPrefixes are appended to the compiled-in allow-list.
	ExtraAllowedPrefixes []string
}

const (
	// DefaultMaxPIDDigits is the default for Options.MaxPIDDigits.
	DefaultMaxPIDDigits = 7
	// DefaultMinPatternLength is the default for Options.MinPatternLength.
	DefaultMinPatternLength = 5
)

// DefaultOptions returns the options of the compiled-in policy.
func DefaultOptions() Options {
	return Options{
		MaxPIDDigits:     DefaultMaxPIDDigits,
		MinPatternLength: DefaultMinPatternLength,
	}
}

// Library is an immutable collection of signatures and allowed prefixes.
// It is safe for concurrent use.
type Library struct {
	destructive []*Signature
	termination []*Signature
	carveOuts   []*Signature
	allowed     []string
	options     Options
}

// New builds a Library. Zero-valued numeric options fall back to defaults.
func New(opts Options) *Library {
	if opts.MaxPIDDigits <= 0 {
		opts.MaxPIDDigits = DefaultMaxPIDDigits
	}
	if opts.MinPatternLength <= 0 {
		opts.MinPatternLength = DefaultMinPatternLength
	}

	allowed := make([]string, 0, len(defaultAllowedPrefixes)+len(opts.ExtraAllowedPrefixes))
	allowed = append(allowed, defaultAllowedPrefixes...)
	for _, p := range opts.ExtraAllowedPrefixes {
		if p = strings.TrimSpace(p); p != "" {
			allowed = append(allowed, p)
		}
	}

	return &Library{
		destructive: compile(ClassDestructive, destructiveDefs()),
		termination: compile(ClassTermination, terminationDefs()),
		carveOuts:   compile(ClassCarveOut, carveOutDefs(opts)),
		allowed:     allowed,
		options:     opts,
	}
}

var defaultLibrary = sync.OnceValue(func() *Library {
	return New(DefaultOptions())
})

// Default returns the process-wide library built from DefaultOptions.
func Default() *Library {
	return defaultLibrary()
}

// Options returns the options the library was built with.
func (l *Library) Options() Options {
	return l.options
}

// Destructive returns the destructive signatures in match order.
func (l *Library) Destructive() []*Signature {
	return l.destructive
}

// Termination returns the termination signatures in match order.
func (l *Library) Termination() []*Signature {
	return l.termination
}

// CarveOuts returns the termination carve-outs in match order.
func (l *Library) CarveOuts() []*Signature {
	return l.carveOuts
}

// AllowedPrefixes returns the allowed URL prefixes.
func (l *Library) AllowedPrefixes() []string {
	return l.allowed
}

// MatchDestructive returns the first destructive signature found anywhere
// in the command text.
func (l *Library) MatchDestructive(command string) (*Signature, bool) {
	return firstMatch(l.destructive, command)
}

// MatchTermination returns the first termination signature matching a
// single command segment.
func (l *Library) MatchTermination(segment string) (*Signature, bool) {
	return firstMatch(l.termination, segment)
}

// MatchCarveOut returns the carve-out covering a whole command segment.
func (l *Library) MatchCarveOut(segment string) (*Signature, bool) {
	return firstMatch(l.carveOuts, segment)
}

// AllowsURL reports whether the URL starts with an allowed prefix.
// The comparison is case-sensitive.
func (l *Library) AllowsURL(url string) bool {
	for _, prefix := range l.allowed {
		if strings.HasPrefix(url, prefix) {
			return true
		}
	}
	return false
}

var segmentSeparator = regexp.MustCompile(`\s*(?:&&|\|\||;|\n|&\s+|&$)\s*`)

// Segments splits a command on list operators (;, &&, ||, newline and a
// trailing or spaced &). Pipelines stay in one segment. This is a plain
// regular expression split, not a shell parse: quoted separators are
// split too, which only ever makes carve-outs harder to satisfy.
func (l *Library) Segments(command string) []string {
	parts := segmentSeparator.Split(command, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type definition struct {
	name        string
	description string
	expr        string
}

func compile(class Class, defs []definition) []*Signature {
	out := make([]*Signature, 0, len(defs))
	for _, d := range defs {
		out = append(out, &Signature{
			Name:        d.name,
			Class:       class,
			Description: d.description,
			re:          regexp.MustCompile(`(?i)` + d.expr),
		})
	}
	return out
}

func firstMatch(sigs []*Signature, text string) (*Signature, bool) {
	for _, s := range sigs {
		if s.Match(text) {
			return s, true
		}
	}
	return nil, false
}
