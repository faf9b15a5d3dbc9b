package toggle

import "sync"

// Header scroll thresholds, in pixels from the top of the page.
const (
	ScrolledThreshold  = 50
	HideThreshold      = 100
	BackToTopThreshold = 300
)

// ScrollState derives the header switches from successive scroll positions.
//
//   - Scrolled is on past ScrolledThreshold.
//   - Hidden is on while scrolling down past HideThreshold, and off as soon as
//     the page moves up again.
//   - BackToTop is on past BackToTopThreshold.
type ScrollState struct {
	Scrolled  *Switch
	Hidden    *Switch
	BackToTop *Switch

	mu   sync.Mutex
	last int
}

// NewScrollState returns a ScrollState positioned at last, with every switch
// already matching that position.
func NewScrollState(last int) *ScrollState {
	return &ScrollState{
		Scrolled:  New(last > ScrolledThreshold),
		Hidden:    New(false),
		BackToTop: New(last > BackToTopThreshold),
		last:      last,
	}
}

// Observe records a new scroll position and updates the switches.
func (s *ScrollState) Observe(y int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Scrolled.Set(y > ScrolledThreshold)
	s.Hidden.Set(y > s.last && y > HideThreshold)
	s.BackToTop.Set(y > BackToTopThreshold)
	s.last = y
}

// Last returns the most recently observed position.
func (s *ScrollState) Last() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
