package site

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"

	"github.com/pthm/hxpanel/internal/content"
	"github.com/pthm/hxpanel/widget/carousel"
)

// FeaturedPath is where the rotator streams slide changes.
const FeaturedPath = "/events/featured"

// sseEvent is a single Server-Sent Event.
type sseEvent struct {
	ID    string
	Event string
	Data  string
}

// Rotator is the site-wide featured banner. One carousel plays on the server
// clock and every connected page receives each slide as an SSE "slide" event,
// which the htmx sse extension swaps into the banner.
type Rotator struct {
	banners []content.Banner
	ctl     *carousel.Controller

	mu      sync.Mutex
	clients map[chan sseEvent]struct{}
	closed  bool
}

// NewRotator creates a rotator over banners. opts are passed to the carousel
// after the rotator's own observer; tests use them to inject a scheduler.
func NewRotator(banners []content.Banner, interval time.Duration, opts ...carousel.Option) (*Rotator, error) {
	r := &Rotator{
		banners: banners,
		clients: make(map[chan sseEvent]struct{}),
	}
	opts = append([]carousel.Option{carousel.WithObserver(r.broadcast)}, opts...)
	ctl, err := carousel.New(len(banners), interval, opts...)
	if err != nil {
		return nil, fmt.Errorf("featured rotator: %w", err)
	}
	r.ctl = ctl
	return r, nil
}

// Run plays the rotator until ctx is done, then closes it.
func (r *Rotator) Run(ctx context.Context) error {
	r.ctl.Play()
	slog.Debug("rotator: started", "banners", len(r.banners), "interval", r.ctl.Interval())
	<-ctx.Done()
	r.Close()
	slog.Debug("rotator: stopped")
	return nil
}

// Close stops the timer and disconnects every client.
func (r *Rotator) Close() {
	r.ctl.Close()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	for ch := range r.clients {
		close(ch)
		delete(r.clients, ch)
	}
}

// Current returns the index of the banner on show.
func (r *Rotator) Current() int {
	return r.ctl.Index()
}

// Clients returns the number of connected streams.
func (r *Rotator) Clients() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// broadcast is the carousel observer. It runs under the controller's lock and
// never calls back into it.
func (r *Rotator) broadcast(index int) {
	event := r.event(index)

	r.mu.Lock()
	defer r.mu.Unlock()
	for ch := range r.clients {
		select {
		case ch <- event:
		default:
			// Slow client; the next slide replaces this one anyway.
			slog.Debug("rotator: dropped slide for slow client", "index", index)
		}
	}
}

func (r *Rotator) event(index int) sseEvent {
	return slideEvent(index, r.banner(index))
}

// slideEvent renders c as the slide event for index. A render failure is
// logged and sends whatever was written, so clients keep their stream.
func slideEvent(index int, c templ.Component) sseEvent {
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		slog.Debug("rotator: failed to render slide", "index", index, "err", err)
	}
	return sseEvent{
		ID:    strconv.Itoa(index),
		Event: "slide",
		Data:  sb.String(),
	}
}

// register adds a client. It returns nil once the rotator is closed.
func (r *Rotator) register() chan sseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	ch := make(chan sseEvent, 4)
	r.clients[ch] = struct{}{}
	return ch
}

func (r *Rotator) unregister(ch chan sseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[ch]; ok {
		delete(r.clients, ch)
		close(ch)
	}
}

// ServeHTTP streams slide events. The current slide is sent on connect so a
// reconnecting page catches up at once.
func (r *Rotator) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	ch := r.register()
	if ch == nil {
		http.Error(w, "featured stream closed", http.StatusServiceUnavailable)
		return
	}
	defer r.unregister(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Long-lived: lift the server's write deadline for this connection.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		slog.Debug("rotator: failed to clear write deadline", "err", err)
	}

	writeSSEEvent(w, flusher, r.event(r.Current()))

	ctx := req.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			writeSSEEvent(w, flusher, event)
		}
	}
}

// writeSSEEvent writes one event. Every line of data gets its own data field.
func writeSSEEvent(w http.ResponseWriter, flusher http.Flusher, event sseEvent) {
	fmt.Fprintf(w, "id: %s\nevent: %s\n", event.ID, event.Event)
	for _, line := range strings.Split(event.Data, "\n") {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprint(w, "\n")
	flusher.Flush()
}

// Banner renders the featured area connected to the stream, showing the
// current slide until the first event arrives.
func (r *Rotator) Banner() templ.Component {
	return html(func(ctx context.Context, m *markup) error {
		m.open("div", templ.Attributes{
			"id":          "featured",
			"class":       "featured",
			"hx-ext":      "sse",
			"sse-connect": FeaturedPath,
			"sse-swap":    "slide",
		})
		if err := r.banner(r.Current()).Render(ctx, &m.Builder); err != nil {
			return err
		}
		m.close("div")
		return nil
	})
}

func (r *Rotator) banner(index int) templ.Component {
	return html(func(ctx context.Context, m *markup) error {
		if index < 0 || index >= len(r.banners) {
			return nil
		}
		b := r.banners[index]
		m.open("a", templ.Attributes{"class": "featured-slide", "href": b.Link, "data-index": strconv.Itoa(index)})
		m.open("strong").text(b.Title).close("strong")
		m.raw(" ").text(b.Text)
		m.close("a")
		return nil
	})
}
