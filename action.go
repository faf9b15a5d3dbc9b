package hxpanel

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// ActionBuilder configures action registration.
//
// Returned by Component.Action() to allow an HTTP method override:
//
//	c.Action("toggle", c.handleToggle)  // POST by default
//	c.Action("raw", c.handleRaw).Method(http.MethodGet)
type ActionBuilder struct {
	action *actionDef
}

// Method overrides the default POST method for an action.
func (ab *ActionBuilder) Method(m string) *ActionBuilder {
	ab.action.method = m
	return ab
}

// Action is a fluent builder for the hx-* attributes of one request.
//
// Components hand these out through Component.Call and Component.Refresh;
// templates finish them with targeting, triggers and UX attributes and spread
// the result with Attrs():
//
//	<button { c.Call("next", props).Attrs()... }>›</button>
//	<div { c.Call("advance", props).Delay(interval).Attrs()... }>
type Action struct {
	url       string
	method    string
	target    string
	swap      SwapMode
	trigger   string
	confirm   string
	indicator string
	pushURL   bool
	vals      map[string]any
}

// NewAction creates an action for url. An empty method means GET.
func NewAction(url, method string) *Action {
	if method == "" {
		method = http.MethodGet
	}
	return &Action{url: url, method: method, swap: SwapOuter}
}

// URL returns the request URL, including encoded props.
func (a *Action) URL() string {
	return a.url
}

// Method returns the HTTP method.
func (a *Action) Method() string {
	return a.method
}

// Target sets hx-target to a CSS selector.
func (a *Action) Target(selector string) *Action {
	a.target = selector
	return a
}

// TargetThis targets the element carrying the attributes.
func (a *Action) TargetThis() *Action {
	return a.Target("this")
}

// TargetClosest targets the closest ancestor matching selector.
func (a *Action) TargetClosest(selector string) *Action {
	return a.Target("closest " + selector)
}

// TargetFind targets the first descendant matching selector.
func (a *Action) TargetFind(selector string) *Action {
	return a.Target("find " + selector)
}

// TargetNext targets the next sibling matching selector.
func (a *Action) TargetNext(selector string) *Action {
	return a.Target("next " + selector)
}

// TargetPrevious targets the previous sibling matching selector.
func (a *Action) TargetPrevious(selector string) *Action {
	return a.Target("previous " + selector)
}

// Swap sets the swap strategy.
func (a *Action) Swap(mode SwapMode) *Action {
	a.swap = mode
	return a
}

func (a *Action) SwapOuter() *Action       { return a.Swap(SwapOuter) }
func (a *Action) SwapInner() *Action       { return a.Swap(SwapInner) }
func (a *Action) SwapBeforeEnd() *Action   { return a.Swap(SwapBeforeEnd) }
func (a *Action) SwapAfterEnd() *Action    { return a.Swap(SwapAfterEnd) }
func (a *Action) SwapBeforeBegin() *Action { return a.Swap(SwapBeforeBegin) }
func (a *Action) SwapAfterBegin() *Action  { return a.Swap(SwapAfterBegin) }
func (a *Action) SwapDelete() *Action      { return a.Swap(SwapDelete) }
func (a *Action) SwapNone() *Action        { return a.Swap(SwapNone) }

// Trigger sets a raw hx-trigger value.
func (a *Action) Trigger(spec string) *Action {
	a.trigger = spec
	return a
}

// Every polls at interval d.
func (a *Action) Every(d time.Duration) *Action {
	return a.Trigger("every " + formatDuration(d))
}

// Delay fires once, d after the element is loaded. Because every swap loads a
// fresh element, re-rendering the element restarts the delay.
func (a *Action) Delay(d time.Duration) *Action {
	return a.Trigger("load delay:" + formatDuration(d))
}

// OnEvent fires when event bubbles to the body, such as events sent through
// Result.Trigger by another component.
func (a *Action) OnEvent(event string) *Action {
	return a.Trigger(event + " from:body")
}

// OnKey fires on a keyup of key anywhere in the document.
func (a *Action) OnKey(key string) *Action {
	return a.Trigger(fmt.Sprintf("keyup[key=='%s'] from:body", key))
}

// OnLoad fires once when the element is loaded.
func (a *Action) OnLoad() *Action {
	return a.Trigger("load")
}

// OnIntersect fires once when the element first enters the viewport.
func (a *Action) OnIntersect() *Action {
	return a.Trigger("intersect once")
}

// OnRevealed fires when the element is scrolled into view.
func (a *Action) OnRevealed() *Action {
	return a.Trigger("revealed")
}

// Confirm asks the user before sending the request.
func (a *Action) Confirm(message string) *Action {
	a.confirm = message
	return a
}

// Indicator shows the element matching selector while the request is in flight.
func (a *Action) Indicator(selector string) *Action {
	a.indicator = selector
	return a
}

// PushURL pushes the request URL onto the browser history.
func (a *Action) PushURL() *Action {
	a.pushURL = true
	return a
}

// Vals adds extra parameters sent with the request.
func (a *Action) Vals(vals map[string]any) *Action {
	if a.vals == nil {
		a.vals = make(map[string]any, len(vals))
	}
	for k, v := range vals {
		a.vals[k] = v
	}
	return a
}

// Attrs renders the hx-* attributes.
func (a *Action) Attrs() templ.Attributes {
	attrs := templ.Attributes{
		"hx-" + strings.ToLower(a.method): a.url,
	}
	if a.target != "" {
		attrs["hx-target"] = a.target
	}
	if a.swap != "" {
		attrs["hx-swap"] = string(a.swap)
	}
	if a.trigger != "" {
		attrs["hx-trigger"] = a.trigger
	}
	if a.confirm != "" {
		attrs["hx-confirm"] = a.confirm
	}
	if a.indicator != "" {
		attrs["hx-indicator"] = a.indicator
	}
	if a.pushURL {
		attrs["hx-push-url"] = "true"
	}
	if len(a.vals) > 0 {
		data, err := json.Marshal(a.vals)
		if err == nil {
			attrs["hx-vals"] = string(data)
		}
	}
	return attrs
}

// AsLink renders a plain href for progressive enhancement.
func (a *Action) AsLink() templ.Attributes {
	return templ.Attributes{"href": a.url}
}

// formatDuration renders d in htmx timing syntax. Whole seconds are written
// in seconds and everything else in milliseconds, rounded up so a timer never
// fires early. htmx has no finer unit, so the result is at least 1ms.
func formatDuration(d time.Duration) string {
	if d >= time.Second && d%time.Second == 0 {
		return fmt.Sprintf("%ds", int64(d/time.Second))
	}
	ms := int64((d + time.Millisecond - 1) / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	return fmt.Sprintf("%dms", ms)
}
