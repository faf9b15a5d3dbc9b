package site

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/pthm/hxpanel"
)

const (
	htmxScript = "https://unpkg.com/htmx.org@2.0.4"
	sseScript  = "https://unpkg.com/htmx-ext-sse@2.2.2/sse.js"
)

// toastScript removes toasts once their data-auto-dismiss delay has passed.
const toastScript = `document.body.addEventListener("htmx:oobAfterSwap",function(e){` +
	`e.detail.target.querySelectorAll(".toast[data-auto-dismiss]").forEach(function(t){` +
	`setTimeout(function(){t.remove()},+t.dataset.autoDismiss);t.removeAttribute("data-auto-dismiss")})});`

// Page renders the whole document with every component in its initial state.
func (s *Site) Page() templ.Component {
	return html(func(ctx context.Context, m *markup) error {
		m.raw("<!DOCTYPE html>").open("html", templ.Attributes{"lang": "en"})
		m.raw("<head>").raw(`<meta charset="utf-8">`).
			raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		m.open("title").text(s.Content.Site).close("title")
		m.open("script", templ.Attributes{"src": htmxScript}).close("script")
		m.open("script", templ.Attributes{"src": sseScript}).close("script")
		m.raw("</head>")

		m.open("body")

		parts := []templ.Component{
			mount[HeaderProps](s.Header, HeaderProps{}),
			s.Rotator.Banner(),
			section("about", "About", s.stats()),
			section("events-section", "Upcoming events", mount[EventsProps](s.Events, EventsProps{Playing: true})),
			section("volunteer", "", mount[FormProps](s.Volunteer, FormProps{})),
			section("donate", "", mount[FormProps](s.Donation, FormProps{})),
			section("faq-section", "Frequently asked questions", mount[FAQProps](s.FAQ, FAQProps{})),
			section("contact", "", mount[FormProps](s.Contact, FormProps{})),
			section("newsletter", "Newsletter", mount[FormProps](s.Newsletter, FormProps{})),
			hxpanel.ToastContainer(),
		}
		for _, p := range parts {
			if err := p.Render(ctx, &m.Builder); err != nil {
				return err
			}
		}

		m.open("script").raw(toastScript).close("script")
		m.close("body").close("html")
		return nil
	})
}

func section(id, title string, body templ.Component) templ.Component {
	return html(func(ctx context.Context, m *markup) error {
		m.open("section", templ.Attributes{"id": id, "class": "section"})
		if title != "" {
			m.open("h2").text(title).close("h2")
		}
		if err := body.Render(ctx, &m.Builder); err != nil {
			return err
		}
		m.close("section")
		return nil
	})
}

// stats renders the headline numbers. The count-up is left to CSS; the
// final value is in the markup.
func (s *Site) stats() templ.Component {
	return html(func(ctx context.Context, m *markup) error {
		m.open("div", templ.Attributes{"class": "stats"})
		for _, st := range s.Content.Stats {
			m.open("div", templ.Attributes{"class": "stat-item"})
			m.open("span", templ.Attributes{"class": "stat-number", "data-target": strconv.Itoa(st.Target)}).
				text(strconv.Itoa(st.Target)).close("span")
			m.open("span", templ.Attributes{"class": "stat-label"}).text(st.Label).close("span")
			m.close("div")
		}
		m.close("div")
		return nil
	})
}
