package hxpanel

import (
	"context"
	"errors"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/pthm/hxpanel/lib/encoding"
	"github.com/pthm/hxpanel/widget"
)

// Sentinel errors for component operations.
var (
	ErrNotFound         = errors.New("hxpanel: resource not found")
	ErrBadRequest       = errors.New("hxpanel: bad request")
	ErrDecryptFailed    = errors.New("hxpanel: parameter decryption failed")
	ErrSignatureInvalid = errors.New("hxpanel: signature verification failed")
	ErrInvalidFormat    = errors.New("hxpanel: invalid parameter format")
	ErrHydrationFailed  = errors.New("hxpanel: hydration failed")
)

// IsNotFound checks if err is a not-found error. Unknown widget ids count.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || widget.IsNotFound(err)
}

// IsBadRequest checks if err reports malformed client input.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest) || errors.Is(err, ErrInvalidFormat)
}

// IsDecryptionError checks if err is a decryption or signature error.
func IsDecryptionError(err error) bool {
	return errors.Is(err, ErrDecryptFailed) || errors.Is(err, ErrSignatureInvalid)
}

// WrapDecodeError maps encoding package errors onto the hxpanel sentinels.
// Other errors pass through unchanged.
func WrapDecodeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrInvalidFormat):
		return ErrInvalidFormat
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return ErrSignatureInvalid
	case errors.Is(err, encoding.ErrDecryptFailed):
		return ErrDecryptFailed
	}
	return err
}

// ErrorComponent renders a minimal inline error box. Used when hydration fails
// during a full-page render and the component has nothing better to show.
func ErrorComponent(err error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, werr := io.WriteString(w, `<div class="hxpanel-error">Hydration error: `+html.EscapeString(err.Error())+`</div>`)
		return werr
	})
}
