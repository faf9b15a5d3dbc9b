// Package hxpanelecho mounts hxpanel components on an Echo server.
//
//	e := echo.New()
//	reg := hxpanelecho.Mount(e, hxpanelecho.WithKey(cfg.Secret))
//	reg.Add(faq, events)
//
// Or mount on a group to share its middleware. Component URLs then live
// under the group, here /widgets/_c/:
//
//	g := e.Group("/widgets", middleware.RequestID())
//	reg := hxpanelecho.MountGroup(g)
package hxpanelecho

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/hxpanel"
)

// Option configures Mount and MountGroup.
type Option func(*options)

type options struct {
	key     []byte
	path    string
	onError hxpanel.ErrorHandler
}

// WithKey sets the props key. Without one a random key is generated, which
// invalidates every rendered page on restart.
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithPath sets the URL prefix for component routes, relative to the group
// for MountGroup. Defaults to "/_c/".
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithErrorHandler replaces the registry's OnError.
func WithErrorHandler(h hxpanel.ErrorHandler) Option {
	return func(o *options) {
		o.onError = h
	}
}

// Mount creates a registry and serves it from e.
func Mount(e *echo.Echo, opts ...Option) *hxpanel.Registry {
	reg, path := newRegistry(opts)
	reg.SetBasePath(path)
	e.Any(reg.BasePath()+"*", echo.WrapHandler(reg.Handler()))
	return reg
}

// MountGroup creates a registry and serves it from g, behind g's middleware.
func MountGroup(g *echo.Group, opts ...Option) *hxpanel.Registry {
	reg, path := newRegistry(opts)
	routes := g.Any("/"+strings.Trim(path, "/")+"/*", echo.WrapHandler(reg.Handler()))
	// Routes carry the group prefix, which the group itself does not expose.
	reg.SetBasePath(strings.TrimSuffix(routes[0].Path, "*"))
	return reg
}

func newRegistry(opts []Option) (*hxpanel.Registry, string) {
	o := &options{path: "/_c/"}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hxpanelecho: failed to generate random key: %v", err))
		}
	}

	reg := hxpanel.NewRegistry(key)
	if o.onError != nil {
		reg.OnError = o.onError
	}
	return reg, o.path
}

// Render writes a templ component to the Echo response with status 200.
//
//	func home(c echo.Context) error {
//	    return hxpanelecho.Render(c, site.Home(page))
//	}
func Render(c echo.Context, component templ.Component) error {
	return RenderStatus(c, http.StatusOK, component)
}

// RenderStatus writes a templ component with the given status.
func RenderStatus(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response())
}

// HTTPError converts hxpanel and widget errors into an *echo.HTTPError with
// the status hxpanel.StatusFor picks, so page handlers and component routes
// answer the same way. Existing echo errors pass through.
func HTTPError(err error) error {
	if err == nil {
		return nil
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	status := hxpanel.StatusFor(err)
	return echo.NewHTTPError(status, http.StatusText(status)).SetInternal(err)
}
