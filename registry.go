package hxpanel

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/pthm/hxpanel/widget"
)

// DefaultBasePath is where a registry serves components unless SetBasePath
// moves them.
const DefaultBasePath = "/_c/"

// Registry mounts components and owns the shared props encoder.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	base       string
	encoder    *Encoder
	components map[string]HXComponent

	// OnError answers failed component requests. Components registered
	// before OnError is replaced still use the new handler.
	OnError ErrorHandler
}

// NewRegistry creates a registry whose props are signed and encrypted with key.
func NewRegistry(key []byte) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hxpanel: failed to create encoder: %v", err))
	}

	return &Registry{
		mux:        http.NewServeMux(),
		base:       DefaultBasePath,
		encoder:    enc,
		components: make(map[string]HXComponent),
		OnError:    DefaultErrorHandler,
	}
}

// Encoder returns the registry's encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// SetBasePath moves component routes under path, which must be the full
// request path the handler is mounted at. Component URLs are built from it,
// so it has to be set before the first Add; SetBasePath panics otherwise.
func (reg *Registry) SetBasePath(path string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if len(reg.components) > 0 {
		panic("hxpanel: SetBasePath called after components were added")
	}
	reg.base = "/" + strings.Trim(path, "/") + "/"
	if reg.base == "//" {
		reg.base = "/"
	}
}

// BasePath returns the path component routes are served under.
func (reg *Registry) BasePath() string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.base
}

// Add registers components. Each must embed *hxpanel.Component[P] and
// implement Hydrater[P] and Renderer[P]. Add panics on a missing method or a
// prefix collision, so wiring mistakes stop the process at startup.
func (reg *Registry) Add(components ...any) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		reg.register(comp)
	}
}

func (reg *Registry) register(comp any) {
	hxc, ok := comp.(HXComponent)
	if !ok {
		panic(fmt.Sprintf("hxpanel: %T does not embed *hxpanel.Component[P]", comp))
	}
	b, ok := comp.(binder)
	if !ok {
		panic(fmt.Sprintf("hxpanel: %T does not embed *hxpanel.Component[P]", comp))
	}

	prefix := b.mountPath(reg.base)
	if _, exists := reg.components[prefix]; exists {
		panic(fmt.Sprintf("hxpanel: prefix collision for %q", prefix))
	}
	if err := b.bind(reg.encoder, prefix, comp, reg.handleError); err != nil {
		panic(err.Error())
	}

	reg.components[prefix] = hxc
	reg.mux.HandleFunc(prefix+"/", hxc.HXServeHTTP)
}

func (reg *Registry) handleError(w http.ResponseWriter, r *http.Request, err error) {
	reg.mu.RLock()
	h := reg.OnError
	reg.mu.RUnlock()
	if h == nil {
		h = DefaultErrorHandler
	}
	h(w, r, err)
}

// Prefixes returns the mounted prefixes, sorted.
func (reg *Registry) Prefixes() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	out := make([]string, 0, len(reg.components))
	for p := range reg.components {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Handler returns the HTTP handler for component routes. Mount it at
// BasePath, DefaultBasePath unless SetBasePath changed it.
//
// Mutating methods must carry HX-Request: true. Browsers will not send that
// header cross-origin without a CORS preflight, which is the CSRF defence.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}
		reg.mux.ServeHTTP(w, r)
	})
}

// DefaultErrorHandler maps errors to status codes and logs them.
//
//   - not found (including unknown widget ids): 404
//   - malformed or tampered props, ErrBadRequest: 400
//   - out-of-range widget index: 422
//   - anything else: 500
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	attrs := []any{"method", r.Method, "path", r.URL.Path, "status", status, "err", err}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "component request failed", attrs...)
	} else {
		slog.WarnContext(r.Context(), "component request rejected", attrs...)
	}
	http.Error(w, http.StatusText(status), status)
}

// StatusFor returns the HTTP status DefaultErrorHandler uses for err.
func StatusFor(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsBadRequest(err), IsDecryptionError(err):
		return http.StatusBadRequest
	case widget.IsIndexOutOfRange(err):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
