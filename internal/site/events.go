package site

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/pthm/hxpanel"
	"github.com/pthm/hxpanel/internal/content"
	"github.com/pthm/hxpanel/widget"
	"github.com/pthm/hxpanel/widget/carousel"
)

// EventsProps is the carousel position.
type EventsProps struct {
	Index   int  `msgpack:"i,omitempty"`
	Playing bool `msgpack:"pl,omitempty"`
}

// Events is the upcoming-events carousel.
//
// The countdown runs in the browser: while playing, every render carries an
// advance request that fires one interval after the element loads. Any action
// re-renders the element, which restarts that countdown, so the next automatic
// advance always comes a full interval after the visitor's last click.
type Events struct {
	*hxpanel.Component[EventsProps]
	events   []content.Event
	interval time.Duration
}

// NewEvents creates the carousel over events.
func NewEvents(events []content.Event, interval time.Duration) *Events {
	c := &Events{
		Component: hxpanel.New[EventsProps]("events"),
		events:    events,
		interval:  interval,
	}
	c.Action("next", c.handleNext)
	c.Action("prev", c.handlePrev)
	c.Action("goto", c.handleGoTo)
	c.Action("play", c.handlePlay)
	c.Action("pause", c.handlePause)
	c.Action("advance", c.handleAdvance)
	return c
}

// Hydrate resets an index that points past the current list of events.
func (c *Events) Hydrate(ctx context.Context, props *EventsProps) error {
	if props.Index < 0 || props.Index >= len(c.events) {
		props.Index = 0
	}
	return nil
}

// browserTimer is the Scheduler for request-scoped controllers. The
// countdown lives in the rendered hx-trigger, so nothing fires server side.
type browserTimer struct{}

func (browserTimer) AfterFunc(time.Duration, func()) carousel.Timer { return browserTimer{} }
func (browserTimer) Stop() bool { return true }

// apply restores a controller from props, runs op and writes the outcome back.
// Slide changes are announced with a slide:changed event.
func (c *Events) apply(props EventsProps, op func(*carousel.Controller) error) hxpanel.Result[EventsProps] {
	var changes []int
	ctl, err := carousel.New(len(c.events), c.interval,
		carousel.WithStartIndex(props.Index),
		carousel.WithScheduler(browserTimer{}),
		carousel.WithObserver(func(i int) { changes = append(changes, i) }),
	)
	if err != nil {
		return hxpanel.Err(props, err)
	}
	defer ctl.Close()
	if props.Playing {
		ctl.Play()
	}

	opErr := op(ctl)
	props.Index = ctl.Index()
	props.Playing = ctl.Playing()
	if opErr != nil {
		return hxpanel.Err(props, opErr)
	}

	res := hxpanel.OK(props)
	if len(changes) > 0 {
		res = res.Trigger("slide:changed", map[string]any{"index": props.Index})
	}
	return res
}

func (c *Events) handleNext(ctx context.Context, props EventsProps) hxpanel.Result[EventsProps] {
	return c.apply(props, func(ctl *carousel.Controller) error {
		ctl.Next()
		return nil
	})
}

func (c *Events) handlePrev(ctx context.Context, props EventsProps) hxpanel.Result[EventsProps] {
	return c.apply(props, func(ctl *carousel.Controller) error {
		ctl.Previous()
		return nil
	})
}

// handleGoTo jumps to the index form value. An index outside the carousel
// leaves it where it was and shows a warning toast.
func (c *Events) handleGoTo(ctx context.Context, props EventsProps, r *http.Request) hxpanel.Result[EventsProps] {
	i, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		return hxpanel.Err(props, fmt.Errorf("%w: slide index %q", hxpanel.ErrBadRequest, r.FormValue("index")))
	}

	res := c.apply(props, func(ctl *carousel.Controller) error { return ctl.GoTo(i) })
	if widget.IsIndexOutOfRange(res.GetErr()) {
		// Keep the rendered carousel, and with it the running timer.
		return hxpanel.OK(props).
			Header("HX-Reswap", "none").
			Flash(hxpanel.FlashWarning, "That event is no longer available.")
	}
	return res
}

func (c *Events) handlePlay(ctx context.Context, props EventsProps) hxpanel.Result[EventsProps] {
	return c.apply(props, func(ctl *carousel.Controller) error {
		ctl.Play()
		return nil
	})
}

func (c *Events) handlePause(ctx context.Context, props EventsProps) hxpanel.Result[EventsProps] {
	return c.apply(props, func(ctl *carousel.Controller) error {
		ctl.Pause()
		return nil
	})
}

// handleAdvance is the browser countdown firing. A paused carousel ignores
// it; a request raced by a pause is harmless.
func (c *Events) handleAdvance(ctx context.Context, props EventsProps) hxpanel.Result[EventsProps] {
	if !props.Playing {
		return hxpanel.OK(props)
	}
	return c.handleNext(ctx, props)
}

// Render draws the current slide, the navigation controls and, while
// playing, the countdown.
func (c *Events) Render(ctx context.Context, props EventsProps) templ.Component {
	return html(func(ctx context.Context, m *markup) error {
		m.open("section", templ.Attributes{
			"id":                   "events",
			"class":                classes("carousel", map[string]bool{"playing": props.Playing}),
			"aria-roledescription": "carousel",
		})
		if len(c.events) == 0 {
			m.open("p", templ.Attributes{"class": "carousel-empty"}).text("No upcoming events.").close("p")
			m.close("section")
			return nil
		}

		if props.Playing {
			m.open("div", attrs(
				templ.Attributes{"class": "carousel-timer", "hidden": true},
				c.Call("advance", props).Target("#events").Delay(c.interval).Attrs(),
			)).close("div")
		}

		m.open("div", templ.Attributes{"class": "slides", "aria-live": liveMode(props.Playing)})
		for i, e := range c.events {
			active := i == props.Index
			m.open("article", templ.Attributes{
				"class":       classes("slide", map[string]bool{"active": active}),
				"aria-hidden": boolString(!active),
				"aria-label":  fmt.Sprintf("%d of %d", i+1, len(c.events)),
			})
			m.open("h3").text(e.Title).close("h3")
			m.open("p", templ.Attributes{"class": "slide-meta"}).text(e.Date + " · " + e.Location).close("p")
			m.open("p").text(e.Summary).close("p")
			m.close("article")
		}
		m.close("div")

		m.open("div", templ.Attributes{"class": "carousel-controls"})
		m.open("button", attrs(templ.Attributes{"class": "prev", "aria-label": "Previous event"},
			c.Call("prev", props).Target("#events").Attrs())).raw(`<i class="fas fa-chevron-left"></i>`).close("button")
		for i := range c.events {
			m.open("button", attrs(
				templ.Attributes{
					"class":        classes("dot", map[string]bool{"active": i == props.Index}),
					"aria-label":   fmt.Sprintf("Go to event %d", i+1),
					"aria-current": boolString(i == props.Index),
				},
				c.Call("goto", props).Target("#events").Vals(map[string]any{"index": i}).Attrs(),
			)).close("button")
		}
		m.open("button", attrs(templ.Attributes{"class": "next", "aria-label": "Next event"},
			c.Call("next", props).Target("#events").Attrs())).raw(`<i class="fas fa-chevron-right"></i>`).close("button")

		if props.Playing {
			m.open("button", attrs(templ.Attributes{"class": "pause", "aria-label": "Pause"},
				c.Call("pause", props).Target("#events").Attrs())).raw(`<i class="fas fa-pause"></i>`).close("button")
		} else {
			m.open("button", attrs(templ.Attributes{"class": "play", "aria-label": "Play"},
				c.Call("play", props).Target("#events").Attrs())).raw(`<i class="fas fa-play"></i>`).close("button")
		}
		m.close("div").close("section")
		return nil
	})
}

func liveMode(playing bool) string {
	if playing {
		return "off"
	}
	return "polite"
}
