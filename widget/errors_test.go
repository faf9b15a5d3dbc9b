package widget

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	errs := []error{ErrConfiguration, ErrNotFound, ErrIndexOutOfRange, ErrClosed}

	for i, err1 := range errs {
		for j, err2 := range errs {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v and %v", err1, err2)
			}
		}
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		config      bool
		notFound    bool
		outOfRange  bool
		recoverable bool
	}{
		{"nil", nil, false, false, false, false},
		{"configuration", fmt.Errorf("%w: duplicate panel", ErrConfiguration), true, false, false, false},
		{"not found", fmt.Errorf("%w: panel %q", ErrNotFound, "faq9"), false, true, false, true},
		{"out of range", fmt.Errorf("%w: 7", ErrIndexOutOfRange), false, false, true, true},
		{"closed", ErrClosed, false, false, false, false},
		{"other", errors.New("boom"), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfigurationError(tt.err); got != tt.config {
				t.Errorf("IsConfigurationError() = %v, want %v", got, tt.config)
			}
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.notFound)
			}
			if got := IsIndexOutOfRange(tt.err); got != tt.outOfRange {
				t.Errorf("IsIndexOutOfRange() = %v, want %v", got, tt.outOfRange)
			}
			if got := IsRecoverable(tt.err); got != tt.recoverable {
				t.Errorf("IsRecoverable() = %v, want %v", got, tt.recoverable)
			}
		})
	}
}
