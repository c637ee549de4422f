// Package analysis defines the document analysis result returned by the
// remote service and the displayable units derived from it.
package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Clause is a titled excerpt of analysis text. Key clauses and red flags
// share the same shape.
type Clause struct {
	// ID is assigned locally when the result is received. The remote
	// service identifies clauses by position only.
	ID     string `json:"-"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Text returns the full display text used for translation and audio.
func (c Clause) Text() string {
	return c.Title + ". " + c.Detail
}

// Result is one document analysis. It is immutable once received.
type Result struct {
	Summary    string   `json:"summary"`
	KeyClauses []Clause `json:"keyClauses"`
	RedFlags   []Clause `json:"redFlags"`
}

// Normalize replaces nil slices with empty ones and assigns a stable ID to
// every clause that does not yet have one.
func (r *Result) Normalize() {
	if r.KeyClauses == nil {
		r.KeyClauses = []Clause{}
	}
	if r.RedFlags == nil {
		r.RedFlags = []Clause{}
	}
	for i := range r.KeyClauses {
		if r.KeyClauses[i].ID == "" {
			r.KeyClauses[i].ID = uuid.NewString()
		}
	}
	for i := range r.RedFlags {
		if r.RedFlags[i].ID == "" {
			r.RedFlags[i].ID = uuid.NewString()
		}
	}
}

// Stats summarizes a result for the counter row.
type Stats struct {
	Documents int `json:"documents"`
	Clauses   int `json:"clauses"`
	RedFlags  int `json:"redFlags"`
}

// AllClear reports whether no red flags were found.
func (s Stats) AllClear() bool {
	return s.RedFlags == 0
}

// Stats returns the counters for a single analyzed document.
func (r Result) Stats() Stats {
	return Stats{
		Documents: 1,
		Clauses:   len(r.KeyClauses),
		RedFlags:  len(r.RedFlags),
	}
}

// Kind identifies which section of a result a unit belongs to.
type Kind string

const (
	KindSummary Kind = "summary"
	KindClause  Kind = "clause"
	KindFlag    Kind = "flag"
)

// Key is the identity of a displayable unit: "summary", "clause-{i}" or
// "flag-{i}".
type Key string

// SummaryKey is the key of the summary unit.
const SummaryKey Key = "summary"

// ClauseKey returns the key of the i-th key clause.
func ClauseKey(i int) Key { return Key(fmt.Sprintf("%s-%d", KindClause, i)) }

// FlagKey returns the key of the i-th red flag.
func FlagKey(i int) Key { return Key(fmt.Sprintf("%s-%d", KindFlag, i)) }

// Parse splits a key into its kind and index. The summary key has index 0.
func (k Key) Parse() (Kind, int, error) {
	if k == SummaryKey {
		return KindSummary, 0, nil
	}

	kind, idx, ok := strings.Cut(string(k), "-")
	if !ok {
		return "", 0, fmt.Errorf("invalid unit key %q", k)
	}

	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 {
		return "", 0, fmt.Errorf("invalid unit key %q", k)
	}

	switch Kind(kind) {
	case KindClause, KindFlag:
		return Kind(kind), i, nil
	default:
		return "", 0, fmt.Errorf("invalid unit key %q", k)
	}
}

// Unit is one displayable piece of analysis text.
type Unit struct {
	Key    Key
	Kind   Kind
	Index  int
	ID     string
	Title  string // empty for the summary
	Detail string
}

// Text returns the original-language display text of the unit.
func (u Unit) Text() string {
	if u.Kind == KindSummary {
		return u.Detail
	}
	return u.Title + ". " + u.Detail
}

// Units returns every unit of the result in display order: the summary,
// then key clauses, then red flags.
func (r Result) Units() []Unit {
	units := make([]Unit, 0, 1+len(r.KeyClauses)+len(r.RedFlags))
	units = append(units, Unit{Key: SummaryKey, Kind: KindSummary, Detail: r.Summary})
	for i, c := range r.KeyClauses {
		units = append(units, Unit{
			Key:    ClauseKey(i),
			Kind:   KindClause,
			Index:  i,
			ID:     c.ID,
			Title:  c.Title,
			Detail: c.Detail,
		})
	}
	for i, f := range r.RedFlags {
		units = append(units, Unit{
			Key:    FlagKey(i),
			Kind:   KindFlag,
			Index:  i,
			ID:     f.ID,
			Title:  f.Title,
			Detail: f.Detail,
		})
	}
	return units
}

// Unit looks up a unit by key.
func (r Result) Unit(key Key) (Unit, bool) {
	kind, i, err := key.Parse()
	if err != nil {
		return Unit{}, false
	}

	switch kind {
	case KindSummary:
		return Unit{Key: SummaryKey, Kind: KindSummary, Detail: r.Summary}, true
	case KindClause:
		if i >= len(r.KeyClauses) {
			return Unit{}, false
		}
		c := r.KeyClauses[i]
		return Unit{Key: key, Kind: kind, Index: i, ID: c.ID, Title: c.Title, Detail: c.Detail}, true
	case KindFlag:
		if i >= len(r.RedFlags) {
			return Unit{}, false
		}
		f := r.RedFlags[i]
		return Unit{Key: key, Kind: kind, Index: i, ID: f.ID, Title: f.Title, Detail: f.Detail}, true
	}
	return Unit{}, false
}
