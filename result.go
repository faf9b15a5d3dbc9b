package hxpanel

// Result[P] is what an action handler returns. It tells the dispatcher how to
// answer: re-render with new props, hand an error to OnError, redirect, or
// stay out of the way because the handler wrote its own response.
//
//	return hxpanel.OK(props)                                  // re-render
//	return hxpanel.OK(props).Flash(hxpanel.FlashError, msg)   // re-render + toast
//	return hxpanel.Err(props, err)                            // OnError decides
//	return hxpanel.OK(props).Trigger("slide:changed", map[string]any{"index": 2})
//
// Results are values; every builder method returns a modified copy.
type Result[P any] struct {
	props       P
	err         error
	redirect    string
	flashes     []Flash
	trigger     string
	triggerData map[string]any
	headers     map[string]string
	status      int
	skip        bool
}

// OK re-renders the component with props.
func OK[P any](props P) Result[P] {
	return Result[P]{props: props}
}

// Err routes err to the registry's OnError. Props ride along for handlers that
// want to render a fallback.
func Err[P any](props P, err error) Result[P] {
	return Result[P]{props: props, err: err}
}

// Skip means the handler already wrote the response. Nothing is rendered.
func Skip[P any]() Result[P] {
	return Result[P]{skip: true}
}

// Redirect answers with an HX-Redirect header and no body.
func Redirect[P any](url string) Result[P] {
	return Result[P]{redirect: url}
}

// Flash queues a toast. Toasts are appended to #toasts out of band, so they
// show up whatever the request's target is.
func (r Result[P]) Flash(level, message string) Result[P] {
	flashes := make([]Flash, len(r.flashes), len(r.flashes)+1)
	copy(flashes, r.flashes)
	r.flashes = append(flashes, Flash{Level: level, Message: message})
	return r
}

// Trigger sets the HX-Trigger event. With data, listeners receive it as
// event detail.
func (r Result[P]) Trigger(event string, data ...map[string]any) Result[P] {
	r.trigger = event
	r.triggerData = nil
	if len(data) > 0 {
		r.triggerData = data[0]
	}
	return r
}

// PushURL updates the browser URL via HX-Push-Url.
func (r Result[P]) PushURL(url string) Result[P] {
	return r.Header("HX-Push-Url", url)
}

// Header sets a response header.
func (r Result[P]) Header(key, value string) Result[P] {
	headers := make(map[string]string, len(r.headers)+1)
	for k, v := range r.headers {
		headers[k] = v
	}
	headers[key] = value
	r.headers = headers
	return r
}

// Status overrides the 200 default.
func (r Result[P]) Status(code int) Result[P] {
	r.status = code
	return r
}

// GetProps returns the props from the result.
func (r Result[P]) GetProps() P { return r.props }

// GetErr returns the error from the result.
func (r Result[P]) GetErr() error { return r.err }

// GetRedirect returns the redirect URL.
func (r Result[P]) GetRedirect() string { return r.redirect }

// GetFlashes returns the queued toasts.
func (r Result[P]) GetFlashes() []Flash { return r.flashes }

// GetTrigger returns the trigger event name.
func (r Result[P]) GetTrigger() string { return r.trigger }

// GetTriggerData returns the trigger event data.
func (r Result[P]) GetTriggerData() map[string]any { return r.triggerData }

// GetHeaders returns the response headers.
func (r Result[P]) GetHeaders() map[string]string { return r.headers }

// GetStatus returns the status code; 0 means 200.
func (r Result[P]) GetStatus() int { return r.status }

// ShouldSkip reports whether the handler wrote its own response.
func (r Result[P]) ShouldSkip() bool { return r.skip }
