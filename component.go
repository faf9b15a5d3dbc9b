package hxpanel

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/a-h/templ"
)

// actionDef holds metadata about a registered action.
type actionDef struct {
	name    string
	method  string
	handler any
}

// Component[P] is the base type embedded by widget components. P is the
// props type: the state that round-trips through the browser.
//
//	type FAQ struct {
//	    *hxpanel.Component[FAQProps]
//	    mode disclosure.Mode
//	}
//
//	func NewFAQ(mode disclosure.Mode) *FAQ {
//	    c := &FAQ{Component: hxpanel.New[FAQProps]("faq"), mode: mode}
//	    c.Action("toggle", c.handleToggle)
//	    return c
//	}
//
// Each instance gets a URL prefix derived from its name and the file:line of
// the New call, so two instances never collide without manual coordination.
type Component[P any] struct {
	name      string
	id        string
	prefix    string
	sensitive bool
	actions   map[string]*actionDef
	encoder   *Encoder
	hydrater  Hydrater[P]
	renderer  Renderer[P]
	onError   ErrorHandler
}

// New creates a component with the given name.
//
// Props are signed by default: readable in the page, but tamper-proof.
// Call Sensitive to encrypt them instead.
func New[P any](name string) *Component[P] {
	id := name + "-" + componentHash(name, 1)
	return &Component[P]{
		name:    name,
		id:      id,
		prefix:  DefaultBasePath + id,
		actions: make(map[string]*actionDef),
	}
}

// Sensitive switches props to AES-GCM encryption.
func (c *Component[P]) Sensitive() *Component[P] {
	c.sensitive = true
	return c
}

// Name returns the component's name.
func (c *Component[P]) Name() string {
	return c.name
}

// Prefix returns the URL prefix all of the component's routes live under.
func (c *Component[P]) Prefix() string {
	return c.prefix
}

// IsSensitive reports whether props are encrypted.
func (c *Component[P]) IsSensitive() bool {
	return c.sensitive
}

// Encoder returns the encoder attached at registration, or nil before.
func (c *Component[P]) Encoder() *Encoder {
	return c.encoder
}

// SetOnError overrides the registry's error handler for this component.
func (c *Component[P]) SetOnError(h ErrorHandler) {
	c.onError = h
}

// OnError returns the component's error handler. It is nil until set by
// SetOnError or by registration.
func (c *Component[P]) OnError() ErrorHandler {
	return c.onError
}

// Action registers a named action handler, POST by default.
//
// Handlers may take any of these shapes:
//   - func(ctx, P) Result[P]
//   - func(ctx, P, *http.Request) Result[P]
//   - func(ctx, P, http.ResponseWriter) Result[P]
//
// Any other type panics, so mistakes surface at startup.
func (c *Component[P]) Action(name string, handler any) *ActionBuilder {
	switch handler.(type) {
	case func(context.Context, P) Result[P],
		func(context.Context, P, *http.Request) Result[P],
		func(context.Context, P, http.ResponseWriter) Result[P]:
	default:
		panic(fmt.Sprintf("hxpanel: %s action %q: unsupported handler type %T", c.name, name, handler))
	}
	if name == "" || strings.Contains(name, "/") {
		panic(fmt.Sprintf("hxpanel: %s: invalid action name %q", c.name, name))
	}

	c.actions[name] = &actionDef{
		name:    name,
		method:  http.MethodPost,
		handler: handler,
	}
	return &ActionBuilder{action: c.actions[name]}
}

// Call returns the request builder for a registered action. Unknown names
// panic, the same way a missing method would fail to compile.
func (c *Component[P]) Call(action string, props P) *Action {
	def, ok := c.actions[action]
	if !ok {
		panic(fmt.Sprintf("hxpanel: %s has no action %q", c.name, action))
	}
	return NewAction(c.buildURL(action, props), def.method)
}

// Refresh returns a GET builder for the default render.
func (c *Component[P]) Refresh(props P) *Action {
	return NewAction(c.buildURL("", props), http.MethodGet)
}

// Lazy renders placeholder now and loads the component when it scrolls into
// view.
func (c *Component[P]) Lazy(props P, placeholder templ.Component) templ.Component {
	return lazyComponent(c.buildURL("", props), placeholder, "intersect once")
}

// Defer renders placeholder now and loads the component right after page load.
func (c *Component[P]) Defer(props P, placeholder templ.Component) templ.Component {
	return lazyComponent(c.buildURL("", props), placeholder, "load")
}

// HXPrefix implements HXComponent.
func (c *Component[P]) HXPrefix() string {
	return c.prefix
}

// HXServeHTTP decodes props from the p parameter, hydrates them and routes
// "GET /" to Render and "METHOD /name" to the matching action.
func (c *Component[P]) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	if c.renderer == nil {
		c.fail(w, r, fmt.Errorf("hxpanel: component %q served before registration", c.name))
		return
	}

	var props P
	if encoded := r.URL.Query().Get("p"); encoded != "" {
		if err := c.encoder.Decode(encoded, c.sensitive, &props); err != nil {
			c.fail(w, r, WrapDecodeError(err))
			return
		}
	}

	if err := c.hydrater.Hydrate(r.Context(), &props); err != nil {
		c.fail(w, r, fmt.Errorf("%w: %s: %w", ErrHydrationFailed, c.name, err))
		return
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, c.prefix), "/")
	if name == "" {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		c.writeRender(w, r, props, nil, 0)
		return
	}

	def, ok := c.actions[name]
	if !ok {
		c.fail(w, r, fmt.Errorf("%w: %s has no action %q", ErrNotFound, c.name, name))
		return
	}
	if r.Method != def.method {
		methodNotAllowed(w, def.method)
		return
	}

	c.handleResult(w, r, c.invoke(def, props, w, r))
}

func (c *Component[P]) invoke(def *actionDef, props P, w http.ResponseWriter, r *http.Request) Result[P] {
	ctx := r.Context()
	switch h := def.handler.(type) {
	case func(context.Context, P) Result[P]:
		return h(ctx, props)
	case func(context.Context, P, *http.Request) Result[P]:
		return h(ctx, props, r)
	case func(context.Context, P, http.ResponseWriter) Result[P]:
		return h(ctx, props, w)
	}
	return Err(props, fmt.Errorf("hxpanel: %s action %q: unsupported handler", c.name, def.name))
}

// handleResult applies a handler's Result. Headers are all set before the
// status line is written.
func (c *Component[P]) handleResult(w http.ResponseWriter, r *http.Request, res Result[P]) {
	if err := res.GetErr(); err != nil {
		c.fail(w, r, err)
		return
	}

	for k, v := range res.GetHeaders() {
		w.Header().Set(k, v)
	}
	if t := BuildTriggerHeader(res.GetTrigger(), res.GetTriggerData()); t != "" {
		w.Header().Set("HX-Trigger", t)
	}
	if redirect := res.GetRedirect(); redirect != "" {
		w.Header().Set("HX-Redirect", redirect)
		return
	}
	if res.ShouldSkip() {
		return
	}

	c.writeRender(w, r, res.GetProps(), res.GetFlashes(), res.GetStatus())
}

// writeRender buffers the render so a failing template still reaches OnError
// with a clean response.
func (c *Component[P]) writeRender(w http.ResponseWriter, r *http.Request, props P, flashes []Flash, status int) {
	var buf bytes.Buffer
	if err := c.renderer.Render(r.Context(), props).Render(r.Context(), &buf); err != nil {
		c.fail(w, r, fmt.Errorf("hxpanel: render %s: %w", c.name, err))
		return
	}
	buf.WriteString(RenderFlashesOOB(flashes))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != 0 {
		w.WriteHeader(status)
	}
	_, _ = w.Write(buf.Bytes())
}

func (c *Component[P]) fail(w http.ResponseWriter, r *http.Request, err error) {
	if c.onError != nil {
		c.onError(w, r, err)
		return
	}
	DefaultErrorHandler(w, r, err)
}

// mountPath implements binder.
func (c *Component[P]) mountPath(base string) string {
	return base + c.id
}

// bind implements binder. parent is the concrete component embedding c and
// prefix is where the registry serves it.
func (c *Component[P]) bind(enc *Encoder, prefix string, parent any, onError ErrorHandler) error {
	h, ok := parent.(Hydrater[P])
	if !ok {
		return fmt.Errorf("hxpanel: %T must implement Hydrate(context.Context, *%T) error", parent, *new(P))
	}
	rd, ok := parent.(Renderer[P])
	if !ok {
		return fmt.Errorf("hxpanel: %T must implement Render(context.Context, %T) templ.Component", parent, *new(P))
	}

	c.prefix = prefix
	c.encoder = enc
	c.hydrater = h
	c.renderer = rd
	if c.onError == nil {
		c.onError = onError
	}
	return nil
}

// buildURL constructs the URL for an action with encoded props.
// Empty action string means default render (GET).
func (c *Component[P]) buildURL(action string, props P) string {
	path := c.prefix + "/" + action
	if c.encoder == nil {
		return path
	}

	encoded, err := c.encoder.Encode(props, c.sensitive)
	if err != nil {
		return path
	}
	return path + "?p=" + encoded
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

// componentHash generates a deterministic hash based on component name and source location.
func componentHash(name string, skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	input := name
	if ok {
		// Base filename only, so the hash is stable across checkouts.
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}

// lazyComponent creates a placeholder that loads content on trigger.
func lazyComponent(url string, placeholder templ.Component, trigger string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div hx-get="%s" hx-trigger="%s" hx-swap="outerHTML">`,
			templ.EscapeString(url), trigger)
		if err != nil {
			return err
		}
		if placeholder != nil {
			if err := placeholder.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, `</div>`)
		return err
	})
}
