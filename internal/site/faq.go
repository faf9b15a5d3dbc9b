package site

import (
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/pthm/hxpanel"
	"github.com/pthm/hxpanel/internal/content"
	"github.com/pthm/hxpanel/widget/disclosure"
)

// FAQProps lists the expanded panel ids.
type FAQProps struct {
	Open []string `msgpack:"o,omitempty"`
}

// FAQ is the question list. Each question header toggles its answer; in
// accordion mode opening one answer closes the others.
type FAQ struct {
	*hxpanel.Component[FAQProps]
	panels []content.Panel
	ids    []string
	mode   disclosure.Mode
}

// NewFAQ creates the FAQ over panels.
func NewFAQ(panels []content.Panel, mode disclosure.Mode) *FAQ {
	ids := make([]string, len(panels))
	for i, p := range panels {
		ids[i] = p.ID
	}
	c := &FAQ{
		Component: hxpanel.New[FAQProps]("faq"),
		panels:    panels,
		ids:       ids,
		mode:      mode,
	}
	c.Action("toggle", c.handleToggle)
	c.Action("collapse", c.handleCollapse)
	return c
}

// Hydrate drops ids that no longer exist, so content edits between renders
// never break a page. In accordion mode only the first open panel survives.
func (c *FAQ) Hydrate(ctx context.Context, props *FAQProps) error {
	if len(props.Open) == 0 {
		return nil
	}
	known := make(map[string]bool, len(c.ids))
	for _, id := range c.ids {
		known[id] = true
	}
	open := props.Open[:0:0]
	for _, id := range props.Open {
		if known[id] {
			open = append(open, id)
		}
	}
	if c.mode == disclosure.Accordion && len(open) > 1 {
		open = open[:1]
	}
	props.Open = open
	return nil
}

// faqChange is one panel transition in a faq:changed event.
type faqChange struct {
	ID       string `json:"id"`
	Expanded bool   `json:"expanded"`
}

// faqChanges collects transitions in the order the group reports them.
type faqChanges []faqChange

func (fc faqChanges) event() map[string]any {
	return map[string]any{"changes": fc}
}

// group restores the disclosure group from props and records its transitions
// into changes.
func (c *FAQ) group(props FAQProps, changes *faqChanges) (*disclosure.Group, error) {
	return disclosure.New(c.ids, c.mode,
		disclosure.WithExpanded(props.Open...),
		disclosure.WithObserver(func(id string, expanded bool) {
			*changes = append(*changes, faqChange{ID: id, Expanded: expanded})
		}),
	)
}

func (c *FAQ) handleToggle(ctx context.Context, props FAQProps, r *http.Request) hxpanel.Result[FAQProps] {
	var changes faqChanges
	g, err := c.group(props, &changes)
	if err != nil {
		return hxpanel.Err(props, err)
	}
	defer g.Close()

	if err := g.Toggle(r.FormValue("id")); err != nil {
		return hxpanel.Err(props, err)
	}
	props.Open = g.Expanded()
	return hxpanel.OK(props).Trigger("faq:changed", changes.event())
}

func (c *FAQ) handleCollapse(ctx context.Context, props FAQProps) hxpanel.Result[FAQProps] {
	var changes faqChanges
	g, err := c.group(props, &changes)
	if err != nil {
		return hxpanel.Err(props, err)
	}
	defer g.Close()

	g.CollapseAll()
	props.Open = nil
	res := hxpanel.OK(props)
	if len(changes) > 0 {
		res = res.Trigger("faq:changed", changes.event())
	}
	return res
}

// Render draws every panel. Collapsed answers are hidden, and the icon
// switches between plus and minus.
func (c *FAQ) Render(ctx context.Context, props FAQProps) templ.Component {
	return html(func(ctx context.Context, m *markup) error {
		open := make(map[string]bool, len(props.Open))
		for _, id := range props.Open {
			open[id] = true
		}

		m.open("div", templ.Attributes{"id": "faq", "class": "faq-list", "data-mode": c.mode.String()})
		for _, p := range c.panels {
			expanded := open[p.ID]
			answerID := "faq-answer-" + p.ID

			m.open("div", templ.Attributes{"class": classes("faq-item", map[string]bool{"active": expanded})})
			m.open("button", attrs(
				templ.Attributes{
					"class":         "faq-question",
					"aria-expanded": boolString(expanded),
					"aria-controls": answerID,
				},
				c.Call("toggle", props).Target("#faq").Vals(map[string]any{"id": p.ID}).Attrs(),
			))
			m.text(p.Question)
			if expanded {
				m.raw(` <i class="fas fa-minus"></i>`)
			} else {
				m.raw(` <i class="fas fa-plus"></i>`)
			}
			m.close("button")

			m.open("div", templ.Attributes{"id": answerID, "class": "faq-answer", "hidden": !expanded})
			m.open("p").text(p.Answer).close("p")
			m.close("div").close("div")
		}
		if len(props.Open) > 0 {
			m.open("button", attrs(
				templ.Attributes{"class": "faq-collapse"},
				c.Call("collapse", props).Target("#faq").Attrs(),
			)).text("Collapse all").close("button")
		}
		m.close("div")
		return nil
	})
}
