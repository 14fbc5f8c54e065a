// Package economy holds the bounded resource quantities that back the
// outpost's idle economy.
package economy

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-outpost/internal/core"
)

// Well-known resource names used by the simulation.
const (
	Energy  = "energy"
	Circles = "circles"
	Squares = "squares"
)

// ErrUnknownResource is returned when a ledger operation names a resource
// that was not declared when the ledger was built.
var ErrUnknownResource = errors.New("economy: unknown resource")

// Resource is a bounded quantity. Cur always stays within [0, Max].
type Resource struct {
	Cur float64
	Max float64
}

// Fraction returns Cur/Max, or 0 for a resource with no capacity.
func (r Resource) Fraction() float64 {
	if r.Max <= 0 {
		return 0
	}
	return r.Cur / r.Max
}

// add applies delta and clamps the result into [0, Max].
func (r *Resource) add(delta float64) {
	r.Cur = core.ClampF(r.Cur+delta, 0, r.Max)
}

// Entry declares one resource when building a ledger.
type Entry struct {
	Name  string
	Start float64
	Max   float64
}

// Ledger maps resource names to quantities. The key set is fixed at
// construction; there is no way to add a resource afterwards.
type Ledger struct {
	order     []string
	resources map[string]*Resource
}

// NewLedger builds a ledger from the given entries, in order.
// Start values are clamped into [0, Max]. Duplicate or empty names and
// negative capacities are rejected.
func NewLedger(entries []Entry) (*Ledger, error) {
	l := &Ledger{
		order:     make([]string, 0, len(entries)),
		resources: make(map[string]*Resource, len(entries)),
	}

	for _, e := range entries {
		if e.Name == "" {
			return nil, errors.New("economy: resource name must not be empty")
		}
		if _, exists := l.resources[e.Name]; exists {
			return nil, fmt.Errorf("economy: duplicate resource %q", e.Name)
		}
		if e.Max < 0 {
			return nil, fmt.Errorf("economy: resource %q has negative max %v", e.Name, e.Max)
		}

		l.order = append(l.order, e.Name)
		l.resources[e.Name] = &Resource{
			Cur: core.ClampF(e.Start, 0, e.Max),
			Max: e.Max,
		}
	}

	return l, nil
}

// Accumulate adds delta (which may be negative) to the named resource,
// clamping the result into [0, Max].
func (l *Ledger) Accumulate(name string, delta float64) error {
	r, ok := l.resources[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownResource, name)
	}
	r.add(delta)
	return nil
}

// Peek returns a copy of the named resource.
func (l *Ledger) Peek(name string) (Resource, error) {
	r, ok := l.resources[name]
	if !ok {
		return Resource{}, fmt.Errorf("%w: %q", ErrUnknownResource, name)
	}
	return *r, nil
}

// Has reports whether the named resource holds at least amount.
// Unknown resources never have anything.
func (l *Ledger) Has(name string, amount float64) bool {
	r, ok := l.resources[name]
	return ok && r.Cur >= amount
}

// Names returns resource names in declaration order.
func (l *Ledger) Names() []string {
	names := make([]string, len(l.order))
	copy(names, l.order)
	return names
}

// Len returns the number of declared resources.
func (l *Ledger) Len() int {
	return len(l.order)
}
