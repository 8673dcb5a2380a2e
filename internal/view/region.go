// Package view renders the site's views into regions. A region is an
// owned slot of markup plus the listeners attached to it; every render
// replaces both wholesale.
package view

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrStale is returned when a render commits into a region that has
	// been overwritten since the render started.
	ErrStale = errors.New("view: stale render")
	// ErrNoListener is returned when a region has no listener for an action.
	ErrNoListener = errors.New("view: no listener")
)

// Token identifies one generation of a region's content.
type Token uint64

// Event is a user interaction with a rendered node.
type Event struct {
	Action string
	// Value carries the node's data attribute, e.g. a project id, a page
	// number or a selected option.
	Value string
}

// Listener handles one action on the nodes of the current generation.
type Listener struct {
	Action string
	Handle func(Event) error
}

// Region is a replaceable slot of markup.
type Region interface {
	Name() string
	// Replace swaps in new markup and listeners and returns the new
	// generation.
	Replace(markup string, listeners ...Listener) Token
	// ReplaceIf is Replace guarded by a token; it fails with ErrStale
	// once the region has moved past tok.
	ReplaceIf(tok Token, markup string, listeners ...Listener) (Token, error)
	Token() Token
	Markup() string
	// Dispatch delivers an event to the current generation's listener.
	Dispatch(ev Event) error
	// Actions lists the actions the current generation listens for.
	Actions() []string
}

// MemRegion is an in-memory Region.
type MemRegion struct {
	name string

	mu        sync.RWMutex
	gen       Token
	markup    string
	listeners []Listener
}

// NewRegion creates an empty region.
func NewRegion(name string) *MemRegion {
	return &MemRegion{name: name}
}

func (r *MemRegion) Name() string { return r.name }

func (r *MemRegion) Replace(markup string, listeners ...Listener) Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.commit(markup, listeners)
}

func (r *MemRegion) ReplaceIf(tok Token, markup string, listeners ...Listener) (Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen != tok {
		return r.gen, ErrStale
	}
	return r.commit(markup, listeners), nil
}

func (r *MemRegion) commit(markup string, listeners []Listener) Token {
	r.gen++
	r.markup = markup
	r.listeners = append([]Listener(nil), listeners...)
	return r.gen
}

func (r *MemRegion) Token() Token {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gen
}

func (r *MemRegion) Markup() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.markup
}

func (r *MemRegion) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.listeners))
	for _, l := range r.listeners {
		out = append(out, l.Action)
	}
	return out
}

// Dispatch runs the handler outside the region lock so handlers may
// re-render the region they were attached to.
func (r *MemRegion) Dispatch(ev Event) error {
	r.mu.RLock()
	var h func(Event) error
	for _, l := range r.listeners {
		if l.Action == ev.Action {
			h = l.Handle
			break
		}
	}
	r.mu.RUnlock()

	if h == nil {
		return fmt.Errorf("%w: %s on %s", ErrNoListener, ev.Action, r.name)
	}
	return h(ev)
}

// owned tracks the generation a view last wrote into its region. Writes
// after the first are guarded, so a view never clobbers content that a
// later render has put in its place.
type owned struct {
	region Region

	mu  sync.Mutex
	tok Token
}

// claim takes the region over unconditionally.
func (o *owned) claim(markup string, listeners []Listener) Token {
	o.tok = o.region.Replace(markup, listeners...)
	return o.tok
}

// update rewrites the region if nothing else has since.
func (o *owned) update(markup string, listeners []Listener) error {
	tok, err := o.region.ReplaceIf(o.tok, markup, listeners...)
	if err != nil {
		return err
	}
	o.tok = tok
	return nil
}
