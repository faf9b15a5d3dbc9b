package hxpanel

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
)

// Hydrater rebuilds request-scoped state from lean props. It runs once per
// request, before any handler or render.
//
// Widget components use it to restore their state machine from the props
// the client sent back:
//
//	func (c *FAQ) Hydrate(ctx context.Context, props *FAQProps) error {
//	    g, err := disclosure.New(c.ids, c.mode, disclosure.WithExpanded(props.Open...))
//	    ...
//	}
type Hydrater[P any] interface {
	Hydrate(ctx context.Context, props *P) error
}

// Renderer produces the component's markup from hydrated props. It is called
// for GET requests and after handlers that return OK. Render must not have
// side effects.
type Renderer[P any] interface {
	Render(ctx context.Context, props P) templ.Component
}

// HXComponent is what the Registry mounts. Anything embedding *Component[P]
// satisfies it through the promoted methods.
type HXComponent interface {
	HXPrefix() string
	HXServeHTTP(w http.ResponseWriter, r *http.Request)
}

// ErrorHandler answers a request that failed with err.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// binder is implemented by *Component[P]. The registry uses it to place the
// component under its base path and attach the encoder and the concrete
// component that embeds the base.
type binder interface {
	mountPath(base string) string
	bind(enc *Encoder, prefix string, parent any, onError ErrorHandler) error
}
