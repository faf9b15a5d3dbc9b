package hxpanel

// SwapMode is an hx-swap strategy. The default is SwapOuter.
//
// See https://htmx.org/attributes/hx-swap/ for visual examples.
type SwapMode string

const (
	// SwapOuter replaces the entire element including its tag. Widgets render
	// their own root element, so this is the default.
	SwapOuter SwapMode = "outerHTML"

	// SwapInner replaces only the element's contents.
	SwapInner SwapMode = "innerHTML"

	// SwapBeforeEnd appends inside the target. The toast container uses it.
	SwapBeforeEnd SwapMode = "beforeend"

	// SwapAfterEnd inserts after the target element.
	SwapAfterEnd SwapMode = "afterend"

	// SwapBeforeBegin inserts before the target element.
	SwapBeforeBegin SwapMode = "beforebegin"

	// SwapAfterBegin prepends inside the target.
	SwapAfterBegin SwapMode = "afterbegin"

	// SwapDelete removes the target element; the response is ignored.
	SwapDelete SwapMode = "delete"

	// SwapNone discards the response. OOB swaps (toasts) still apply.
	SwapNone SwapMode = "none"
)
