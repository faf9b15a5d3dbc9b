// Package carousel manages an ordered set of slides with manual navigation and
// an optional auto-advance timer.
//
// The controller never touches slide content. It tracks the current index,
// wraps it in both directions, and tells the host about every change through
// the Observer:
//
//	c, err := carousel.New(len(events), 5*time.Second,
//	    carousel.WithObserver(func(i int) { /* show slide i */ }))
//	c.Play()
//	defer c.Close()
//
// Manual navigation while playing restarts the timer, so the next automatic
// advance always comes one full interval after the user's last interaction.
package carousel

import (
	"fmt"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/pthm/hxpanel/widget"
)

// Observer receives the new index after every slide change, synchronously,
// inside the call (or timer tick) that caused it. Observers must not call back
// into the Controller.
type Observer func(index int)

// Option configures a Controller.
type Option func(*Controller)

// WithObserver sets the slide-change observer.
func WithObserver(fn Observer) Option {
	return func(c *Controller) {
		c.observer = fn
	}
}

// WithScheduler replaces the real-clock scheduler. Tests use this to drive the
// timer with a logical clock.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.sched = s
	}
}

// WithStartIndex restores the current index. It must lie in [0, slideCount).
func WithStartIndex(i int) Option {
	return func(c *Controller) {
		c.index = i
	}
}

// Controller is a carousel state machine. It is safe for concurrent use;
// timer ticks and manual calls are serialized.
type Controller struct {
	mu       sync.Mutex
	n        int
	index    int
	interval time.Duration
	playing  bool
	closed   bool
	observer Observer
	sched    Scheduler
	timer    Timer
	gen      uint64 // bumped whenever the live timer is replaced
}

// New creates a Controller over slideCount slides advancing every interval
// while playing.
//
// Returns an error wrapping widget.ErrConfiguration for a negative count, a
// non-positive interval, or an out-of-range start index.
func New(slideCount int, interval time.Duration, opts ...Option) (*Controller, error) {
	if slideCount < 0 {
		return nil, fmt.Errorf("%w: negative slide count %d", widget.ErrConfiguration, slideCount)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %s", widget.ErrConfiguration, interval)
	}

	c := &Controller{
		n:        slideCount,
		interval: interval,
		sched:    ClockScheduler(clock.RealClock{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.index != 0 && (c.index < 0 || c.index >= c.n) {
		return nil, fmt.Errorf("%w: start index %d outside [0, %d)", widget.ErrConfiguration, c.index, c.n)
	}
	return c, nil
}

// Len returns the number of slides.
func (c *Controller) Len() int {
	return c.n
}

// Interval returns the auto-advance interval.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// Index returns the current slide index. It is 0 for an empty carousel.
func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Playing reports whether auto-advance is active.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Next advances one slide, wrapping to the first after the last.
func (c *Controller) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inert() {
		return
	}
	c.move((c.index + 1) % c.n)
	c.restart()
}

// Previous retreats one slide, wrapping to the last before the first.
func (c *Controller) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inert() {
		return
	}
	c.move((c.index - 1 + c.n) % c.n)
	c.restart()
}

// GoTo jumps to slide i. It is a no-op on an empty carousel. For i outside
// [0, Len()) it returns an error wrapping widget.ErrIndexOutOfRange and leaves
// the index and timer untouched.
func (c *Controller) GoTo(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return widget.ErrClosed
	}
	if c.n == 0 {
		return nil
	}
	if i < 0 || i >= c.n {
		return fmt.Errorf("%w: slide %d outside [0, %d)", widget.ErrIndexOutOfRange, i, c.n)
	}
	c.move(i)
	c.restart()
	return nil
}

// Play starts auto-advance. Calling Play while playing has no effect, and an
// empty carousel never plays.
func (c *Controller) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inert() || c.playing {
		return
	}
	c.playing = true
	c.arm()
}

// Pause stops auto-advance. Calling Pause while paused has no effect.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stop()
	c.playing = false
}

// Close cancels any pending tick and detaches the observer. The controller is
// inert afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stop()
	c.playing = false
	c.closed = true
	c.observer = nil
}

func (c *Controller) inert() bool {
	return c.closed || c.n == 0
}

// move sets the index and notifies. Caller holds c.mu.
func (c *Controller) move(i int) {
	c.index = i
	if c.observer != nil {
		c.observer(i)
	}
}

// restart re-arms a playing timer so the cadence restarts from now.
func (c *Controller) restart() {
	if !c.playing {
		return
	}
	c.stop()
	c.arm()
}

func (c *Controller) arm() {
	c.gen++
	gen := c.gen
	c.timer = c.sched.AfterFunc(c.interval, func() { c.tick(gen) })
}

func (c *Controller) stop() {
	c.gen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// tick is the timer callback. A tick whose generation no longer matches was
// superseded by a restart, pause or close after it had already been queued.
func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || !c.playing || c.inert() {
		return
	}
	c.move((c.index + 1) % c.n)
	c.arm()
}
