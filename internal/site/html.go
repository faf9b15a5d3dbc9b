package site

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/hxpanel"
)

// markup accumulates HTML for a templ.ComponentFunc. Text goes through
// templ.EscapeString; attribute maps are written in sorted key order so output
// is stable.
type markup struct {
	strings.Builder
}

func (m *markup) raw(s string) *markup {
	m.WriteString(s)
	return m
}

func (m *markup) text(s string) *markup {
	m.WriteString(templ.EscapeString(s))
	return m
}

// open writes <tag attrs...>.
func (m *markup) open(tag string, attrs ...templ.Attributes) *markup {
	m.WriteString("<" + tag)
	for _, a := range attrs {
		writeAttrs(&m.Builder, a)
	}
	m.WriteString(">")
	return m
}

func (m *markup) close(tag string) *markup {
	m.WriteString("</" + tag + ">")
	return m
}

func writeAttrs(sb *strings.Builder, attrs templ.Attributes) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := attrs[k].(type) {
		case bool:
			if v {
				sb.WriteString(" " + k)
			}
		case string:
			sb.WriteString(" " + k + `="` + templ.EscapeString(v) + `"`)
		default:
			sb.WriteString(" " + k + `="` + templ.EscapeString(fmt.Sprint(v)) + `"`)
		}
	}
}

// attrs merges attribute maps left to right.
func attrs(sets ...templ.Attributes) templ.Attributes {
	out := templ.Attributes{}
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

// classes joins the names whose flag is set.
func classes(base string, flags map[string]bool) string {
	names := []string{base}
	extra := make([]string, 0, len(flags))
	for name, on := range flags {
		if on {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return strings.Join(append(names, extra...), " ")
}

// html wraps a markup builder into a templ component.
func html(build func(ctx context.Context, m *markup) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var m markup
		if err := build(ctx, &m); err != nil {
			return err
		}
		_, err := io.WriteString(w, m.String())
		return err
	})
}

// lifecycle is what a mounted widget implements.
type lifecycle[P any] interface {
	hxpanel.Hydrater[P]
	hxpanel.Renderer[P]
}

// mount hydrates props and renders the component inline, as part of a full
// page. A hydration failure renders an error box instead of failing the page.
func mount[P any](comp lifecycle[P], props P) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := comp.Hydrate(ctx, &props); err != nil {
			return hxpanel.ErrorComponent(err).Render(ctx, w)
		}
		return comp.Render(ctx, props).Render(ctx, w)
	})
}
