package site

import (
	"context"

	"github.com/a-h/templ"

	"github.com/pthm/hxpanel"
	"github.com/pthm/hxpanel/widget/toggle"
)

// NavProps is the mobile menu state.
type NavProps struct {
	Open bool `msgpack:"o,omitempty"`
}

// NavLink is one menu entry.
type NavLink struct {
	Label string
	Href  string
}

// NavMenu is the hamburger menu. The hamburger toggles it, and a link click
// or the Escape key closes it.
type NavMenu struct {
	*hxpanel.Component[NavProps]
	links []NavLink
}

// NewNavMenu creates the menu over links.
func NewNavMenu(links []NavLink) *NavMenu {
	c := &NavMenu{
		Component: hxpanel.New[NavProps]("nav"),
		links:     links,
	}
	c.Action("toggle", c.handleToggle)
	c.Action("close", c.handleClose)
	return c
}

// Hydrate is a no-op: the whole state is the open flag.
func (c *NavMenu) Hydrate(ctx context.Context, props *NavProps) error {
	return nil
}

func (c *NavMenu) handleToggle(ctx context.Context, props NavProps) hxpanel.Result[NavProps] {
	return c.apply(props, (*toggle.Switch).Toggle)
}

func (c *NavMenu) handleClose(ctx context.Context, props NavProps) hxpanel.Result[NavProps] {
	return c.apply(props, func(s *toggle.Switch) bool {
		s.Set(false)
		return false
	})
}

// apply runs op against a switch restored from props and announces a change
// with a menu:toggled event.
func (c *NavMenu) apply(props NavProps, op func(*toggle.Switch) bool) hxpanel.Result[NavProps] {
	changed := false
	s := toggle.New(props.Open, toggle.WithObserver(func(bool) { changed = true }))
	op(s)

	props.Open = s.IsActive()
	res := hxpanel.OK(props)
	if changed {
		res = res.Trigger("menu:toggled", map[string]any{"open": props.Open})
	}
	return res
}

// Render draws the menu. While open, an Escape keyup anywhere closes it.
func (c *NavMenu) Render(ctx context.Context, props NavProps) templ.Component {
	return html(func(ctx context.Context, m *markup) error {
		root := templ.Attributes{"id": "nav", "class": classes("nav", map[string]bool{"open": props.Open})}
		if props.Open {
			root = attrs(root, c.Call("close", props).OnKey("Escape").Target("#nav").Attrs())
		}
		m.open("nav", root)

		m.open("button", attrs(
			templ.Attributes{
				"class":         classes("hamburger", map[string]bool{"toggle": props.Open}),
				"aria-label":    "Menu",
				"aria-expanded": boolString(props.Open),
				"aria-controls": "nav-links",
			},
			c.Call("toggle", props).Target("#nav").Attrs(),
		))
		m.raw(`<span class="bar"></span><span class="bar"></span><span class="bar"></span>`).close("button")

		m.open("ul", templ.Attributes{"id": "nav-links", "class": classes("nav-links", map[string]bool{"active": props.Open})})
		for _, l := range c.links {
			a := templ.Attributes{"href": l.Href}
			if props.Open {
				// Close on navigation; htmx fires before the browser follows the anchor.
				a = attrs(a, c.Call("close", props).Target("#nav").Trigger("click").Attrs())
			}
			m.raw("<li>").open("a", a).text(l.Label).close("a").raw("</li>")
		}
		m.close("ul").close("nav")
		return nil
	})
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
