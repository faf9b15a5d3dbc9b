package hxpanel

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
)

// Render writes a templ component as an HTML response. Component handlers do
// not need it; the dispatcher renders for them. Use it for full pages.
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX reports whether the request came from htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted reports whether the request is an hx-boost navigation.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}

// CurrentURL returns the browser's current URL from HX-Current-URL, or "" for
// non-htmx requests.
func CurrentURL(r *http.Request) string {
	return r.Header.Get("HX-Current-URL")
}

// TriggerName returns the name attribute of the element that fired the request.
func TriggerName(r *http.Request) string {
	return r.Header.Get("HX-Trigger-Name")
}

// TriggerID returns the id attribute of the element that fired the request.
func TriggerID(r *http.Request) string {
	return r.Header.Get("HX-Trigger")
}

// TargetID returns the id attribute of the swap target.
func TargetID(r *http.Request) string {
	return r.Header.Get("HX-Target")
}

// BuildTriggerHeader formats an HX-Trigger value: the bare event name, or a
// JSON object {"event": data} when data is present.
func BuildTriggerHeader(trigger string, triggerData map[string]any) string {
	if trigger == "" {
		return ""
	}
	if triggerData == nil {
		return trigger
	}

	data, err := json.Marshal(map[string]any{trigger: triggerData})
	if err != nil {
		return trigger
	}
	return string(data)
}
