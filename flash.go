package hxpanel

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// Flash levels for toast notifications.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// FlashDismissMillis is how long a toast stays on screen.
const FlashDismissMillis = 5000

// Flash is a one-time toast notification.
type Flash struct {
	Level   string // success, error, warning, info
	Message string
}

// RenderFlashesOOB renders flashes as an out-of-band swap that appends to the
// #toasts container. Returns "" for no flashes.
//
// Each toast carries data-auto-dismiss (milliseconds), read by the page
// script that removes expired toasts.
func RenderFlashesOOB(flashes []Flash) string {
	if len(flashes) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<div id="toasts" hx-swap-oob="beforeend">`)
	for _, f := range flashes {
		sb.WriteString(`<div class="toast toast-`)
		sb.WriteString(templ.EscapeString(f.Level))
		sb.WriteString(`" role="status" data-auto-dismiss="`)
		sb.WriteString(strconv.Itoa(FlashDismissMillis))
		sb.WriteString(`">`)
		sb.WriteString(templ.EscapeString(f.Message))
		sb.WriteString(`</div>`)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// ToastContainer renders the empty #toasts container. Place it once per page.
func ToastContainer() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<div id="toasts" class="toast-container" aria-live="polite"></div>`)
		return err
	})
}
