// Package disclosure manages a set of expand/collapse panels, such as the
// items of an FAQ list.
//
// A Group owns only the expanded flag of each panel. Content, heights and
// icons belong to the host, which learns about every transition through the
// Observer passed at construction:
//
//	g, err := disclosure.New([]string{"faq1", "faq2"}, disclosure.Accordion,
//	    disclosure.WithObserver(func(id string, expanded bool) {
//	        // drive max-height / icon classes
//	    }))
//
// In Accordion mode at most one panel is expanded at a time. Toggling the open
// panel collapses it, so it is possible for no panel to be open.
package disclosure

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pthm/hxpanel/widget"
)

// Mode selects whether panels are mutually exclusive.
type Mode int

const (
	// Accordion allows at most one expanded panel.
	Accordion Mode = iota
	// Independent lets every panel expand and collapse on its own.
	Independent
)

// String returns the config spelling of the mode.
func (m Mode) String() string {
	switch m {
	case Accordion:
		return "accordion"
	case Independent:
		return "independent"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "accordion" or "independent" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accordion", "":
		return Accordion, nil
	case "independent":
		return Independent, nil
	default:
		return 0, fmt.Errorf("%w: unknown disclosure mode %q", widget.ErrConfiguration, s)
	}
}

// Observer is notified of every panel transition, synchronously, inside the
// call that caused it. Observers must not call back into the Group.
type Observer func(id string, expanded bool)

// Option configures a Group.
type Option func(*Group)

// WithObserver sets the transition observer.
func WithObserver(fn Observer) Option {
	return func(g *Group) {
		g.observer = fn
	}
}

// WithExpanded restores panels that start out expanded. No notifications are
// emitted for the initial state.
func WithExpanded(ids ...string) Option {
	return func(g *Group) {
		g.initial = append(g.initial, ids...)
	}
}

type panel struct {
	id       string
	expanded bool
}

// Group is a set of disclosure panels. It is safe for concurrent use.
type Group struct {
	mu       sync.Mutex
	mode     Mode
	panels   []panel
	index    map[string]int
	observer Observer
	initial  []string
	closed   bool
}

// New creates a Group over the given panel ids, in display order.
//
// Returns an error wrapping widget.ErrConfiguration if an id is empty or
// duplicated, if an initially expanded id is unknown, or if more than one
// panel starts expanded in Accordion mode.
func New(ids []string, mode Mode, opts ...Option) (*Group, error) {
	if mode != Accordion && mode != Independent {
		return nil, fmt.Errorf("%w: unknown disclosure mode %d", widget.ErrConfiguration, int(mode))
	}

	g := &Group{
		mode:   mode,
		panels: make([]panel, 0, len(ids)),
		index:  make(map[string]int, len(ids)),
	}
	for _, opt := range opts {
		opt(g)
	}

	for _, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w: empty panel id", widget.ErrConfiguration)
		}
		if _, dup := g.index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate panel id %q", widget.ErrConfiguration, id)
		}
		g.index[id] = len(g.panels)
		g.panels = append(g.panels, panel{id: id})
	}

	open := 0
	for _, id := range g.initial {
		i, ok := g.index[id]
		if !ok {
			return nil, fmt.Errorf("%w: initially expanded panel %q is not in the group", widget.ErrConfiguration, id)
		}
		if g.panels[i].expanded {
			continue
		}
		g.panels[i].expanded = true
		open++
	}
	if mode == Accordion && open > 1 {
		return nil, fmt.Errorf("%w: %d panels expanded in accordion mode", widget.ErrConfiguration, open)
	}
	g.initial = nil

	return g, nil
}

// Mode returns the exclusivity mode fixed at construction.
func (g *Group) Mode() Mode {
	return g.mode
}

// Toggle flips the panel with the given id.
//
// In Accordion mode, expanding a panel first collapses every other expanded
// panel in list order, then expands the target. Returns an error wrapping
// widget.ErrNotFound for unknown ids; the group is left untouched.
func (g *Group) Toggle(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return widget.ErrClosed
	}

	i, ok := g.index[id]
	if !ok {
		return fmt.Errorf("%w: panel %q", widget.ErrNotFound, id)
	}

	expand := !g.panels[i].expanded
	if expand && g.mode == Accordion {
		for j := range g.panels {
			if j != i && g.panels[j].expanded {
				g.set(j, false)
			}
		}
	}
	g.set(i, expand)
	return nil
}

// CollapseAll collapses every expanded panel, in list order.
func (g *Group) CollapseAll() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}
	for i := range g.panels {
		if g.panels[i].expanded {
			g.set(i, false)
		}
	}
}

// IsExpanded reports whether the panel is expanded. Unknown ids are collapsed.
func (g *Group) IsExpanded(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	i, ok := g.index[id]
	return ok && g.panels[i].expanded
}

// Expanded returns the ids of expanded panels in list order.
func (g *Group) Expanded() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var ids []string
	for _, p := range g.panels {
		if p.expanded {
			ids = append(ids, p.id)
		}
	}
	return ids
}

// Panels returns all panel ids in list order.
func (g *Group) Panels() []string {
	ids := make([]string, len(g.panels))
	for i, p := range g.panels {
		ids[i] = p.id
	}
	return ids
}

// Close detaches the observer. Later calls to Toggle return widget.ErrClosed.
func (g *Group) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.closed = true
	g.observer = nil
}

// set changes one panel and notifies. Caller holds g.mu.
func (g *Group) set(i int, expanded bool) {
	g.panels[i].expanded = expanded
	if g.observer != nil {
		g.observer(g.panels[i].id, expanded)
	}
}
