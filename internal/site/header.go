package site

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/pthm/hxpanel"
	"github.com/pthm/hxpanel/widget/toggle"
)

// HeaderProps carries the last reported scroll position and the flags derived
// from it.
type HeaderProps struct {
	Y         int  `msgpack:"y,omitempty"`
	Scrolled  bool `msgpack:"s,omitempty"`
	Hidden    bool `msgpack:"h,omitempty"`
	BackToTop bool `msgpack:"b,omitempty"`
}

// Header is the sticky page header and the back-to-top button. The browser
// reports its scroll position, throttled, and the header re-renders with the
// scrolled and hidden classes.
type Header struct {
	*hxpanel.Component[HeaderProps]
	site string
	nav  *NavMenu
}

// NewHeader creates the header. nav is rendered inside it.
func NewHeader(site string, nav *NavMenu) *Header {
	c := &Header{
		Component: hxpanel.New[HeaderProps]("header"),
		site:      site,
		nav:       nav,
	}
	c.Action("scroll", c.handleScroll)
	return c
}

// Hydrate is a no-op.
func (c *Header) Hydrate(ctx context.Context, props *HeaderProps) error {
	return nil
}

func (c *Header) handleScroll(ctx context.Context, props HeaderProps, r *http.Request) hxpanel.Result[HeaderProps] {
	y, err := strconv.Atoi(r.FormValue("y"))
	if err != nil || y < 0 {
		return hxpanel.Err(props, fmt.Errorf("%w: scroll position %q", hxpanel.ErrBadRequest, r.FormValue("y")))
	}

	s := toggle.NewScrollState(props.Y)
	s.Scrolled.Set(props.Scrolled)
	s.Hidden.Set(props.Hidden)
	s.BackToTop.Set(props.BackToTop)
	s.Observe(y)

	next := HeaderProps{
		Y:         s.Last(),
		Scrolled:  s.Scrolled.IsActive(),
		Hidden:    s.Hidden.IsActive(),
		BackToTop: s.BackToTop.IsActive(),
	}
	res := hxpanel.OK(next)
	if next.BackToTop != props.BackToTop {
		res = res.Trigger("header:backtotop", map[string]any{"visible": next.BackToTop})
	}
	return res
}

// Render draws the header and the back-to-top button. The root reports
// window scroll positions at most every 100ms.
func (c *Header) Render(ctx context.Context, props HeaderProps) templ.Component {
	return html(func(ctx context.Context, m *markup) error {
		action := c.Call("scroll", props).TargetThis().Trigger("scroll from:window throttle:100ms").Attrs()
		action["hx-vals"] = "js:{y: Math.round(window.scrollY)}"

		m.open("div", attrs(templ.Attributes{"id": "header-wrap"}, action))
		m.open("header", templ.Attributes{
			"id":    "top",
			"class": classes("header", map[string]bool{"scrolled": props.Scrolled, "hidden": props.Hidden}),
		})
		m.open("a", templ.Attributes{"class": "logo", "href": "#"}).text(c.site).close("a")
		// The menu keeps its own state across header swaps.
		m.open("div", templ.Attributes{"id": "nav-slot", "hx-preserve": "true"})
		if err := mount[NavProps](c.nav, NavProps{}).Render(ctx, &m.Builder); err != nil {
			return err
		}
		m.close("div").close("header")

		m.open("a", templ.Attributes{
			"id":          "scroll-to-top",
			"href":        "#top",
			"aria-label":  "Back to top",
			"class":       classes("back-to-top", map[string]bool{"visible": props.BackToTop}),
			"aria-hidden": boolString(!props.BackToTop),
		}).raw(`<i class="fas fa-chevron-up"></i>`).close("a")
		m.close("div")
		return nil
	})
}
