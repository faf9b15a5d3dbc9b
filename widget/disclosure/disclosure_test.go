package disclosure

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/pthm/hxpanel/widget"
)

type transition struct {
	id       string
	expanded bool
}

type recorder struct {
	events []transition
}

func (r *recorder) observe(id string, expanded bool) {
	r.events = append(r.events, transition{id, expanded})
}

func newGroup(t *testing.T, mode Mode, opts ...Option) (*Group, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts = append(opts, WithObserver(rec.observe))
	g, err := New([]string{"faq1", "faq2", "faq3"}, mode, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g, rec
}

func TestNew_Configuration(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		mode    Mode
		opts    []Option
		wantErr bool
	}{
		{"empty group", nil, Accordion, nil, false},
		{"unique ids", []string{"a", "b"}, Independent, nil, false},
		{"duplicate ids", []string{"a", "b", "a"}, Accordion, nil, true},
		{"empty id", []string{"a", ""}, Accordion, nil, true},
		{"unknown mode", []string{"a"}, Mode(9), nil, true},
		{"unknown initial panel", []string{"a"}, Accordion, []Option{WithExpanded("z")}, true},
		{"two open in accordion", []string{"a", "b"}, Accordion, []Option{WithExpanded("a", "b")}, true},
		{"two open independent", []string{"a", "b"}, Independent, []Option{WithExpanded("a", "b")}, false},
		{"same panel twice", []string{"a", "b"}, Accordion, []Option{WithExpanded("a", "a")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.ids, tt.mode, tt.opts...)
			if tt.wantErr {
				if !widget.IsConfigurationError(err) {
					t.Fatalf("New() error = %v, want configuration error", err)
				}
				if g != nil {
					t.Error("New() returned a group alongside an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
		})
	}
}

func TestAccordionScenario(t *testing.T) {
	g, rec := newGroup(t, Accordion)

	steps := []struct {
		toggle string
		want   map[string]bool
	}{
		{"faq1", map[string]bool{"faq1": true, "faq2": false, "faq3": false}},
		{"faq2", map[string]bool{"faq1": false, "faq2": true, "faq3": false}},
		{"faq2", map[string]bool{"faq1": false, "faq2": false, "faq3": false}},
	}

	for _, step := range steps {
		if err := g.Toggle(step.toggle); err != nil {
			t.Fatalf("Toggle(%q) error = %v", step.toggle, err)
		}
		for id, want := range step.want {
			if got := g.IsExpanded(id); got != want {
				t.Errorf("after Toggle(%q): IsExpanded(%q) = %v, want %v", step.toggle, id, got, want)
			}
		}
	}

	want := []transition{
		{"faq1", true},
		{"faq1", false},
		{"faq2", true},
		{"faq2", false},
	}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestAccordion_TargetTransitionsLast(t *testing.T) {
	// faq3 sits after the target in list order; its collapse must still come first.
	g, rec := newGroup(t, Accordion, WithExpanded("faq3"))

	if err := g.Toggle("faq1"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	want := []transition{{"faq3", false}, {"faq1", true}}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestAccordion_AtMostOneExpanded(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	g, err := New(ids, Accordion)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		id := ids[rng.Intn(len(ids))]
		if err := g.Toggle(id); err != nil {
			t.Fatalf("Toggle(%q) error = %v", id, err)
		}
		if open := g.Expanded(); len(open) > 1 {
			t.Fatalf("step %d: %d panels expanded: %v", i, len(open), open)
		}
	}
}

func TestIndependentMode(t *testing.T) {
	g, rec := newGroup(t, Independent)

	for _, id := range []string{"faq1", "faq3"} {
		if err := g.Toggle(id); err != nil {
			t.Fatalf("Toggle(%q) error = %v", id, err)
		}
	}

	if got := g.Expanded(); !reflect.DeepEqual(got, []string{"faq1", "faq3"}) {
		t.Errorf("Expanded() = %v, want [faq1 faq3]", got)
	}
	if len(rec.events) != 2 {
		t.Errorf("got %d events, want 2", len(rec.events))
	}
}

func TestToggle_UnknownPanel(t *testing.T) {
	g, rec := newGroup(t, Accordion, WithExpanded("faq2"))

	err := g.Toggle("faq9")
	if !widget.IsNotFound(err) {
		t.Fatalf("Toggle() error = %v, want not found", err)
	}
	if !g.IsExpanded("faq2") {
		t.Error("unknown toggle changed state")
	}
	if len(rec.events) != 0 {
		t.Errorf("unknown toggle emitted %d events", len(rec.events))
	}
}

func TestCollapseAll(t *testing.T) {
	g, rec := newGroup(t, Independent, WithExpanded("faq1", "faq3"))

	g.CollapseAll()

	if got := g.Expanded(); len(got) != 0 {
		t.Errorf("Expanded() = %v, want none", got)
	}
	want := []transition{{"faq1", false}, {"faq3", false}}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestClose(t *testing.T) {
	g, rec := newGroup(t, Accordion)
	g.Close()

	if err := g.Toggle("faq1"); err != widget.ErrClosed {
		t.Errorf("Toggle() after Close error = %v, want %v", err, widget.ErrClosed)
	}
	g.CollapseAll()
	if len(rec.events) != 0 {
		t.Errorf("closed group emitted %d events", len(rec.events))
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"accordion", Accordion, false},
		{"Independent", Independent, false},
		{"", Accordion, false},
		{"tabs", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if Accordion.String() != "accordion" || Independent.String() != "independent" {
		t.Error("Mode.String() does not round-trip through ParseMode")
	}
}
