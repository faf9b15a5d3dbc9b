package hxpanel

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/a-h/templ"
)

func TestAction_Attrs(t *testing.T) {
	const u = "/_c/events-1a2b/next?p=x"

	tests := []struct {
		name  string
		build func(*Action) *Action
		key   string
		want  string
	}{
		{"default swap", func(a *Action) *Action { return a }, "hx-swap", "outerHTML"},
		{"method attribute", func(a *Action) *Action { return a }, "hx-post", u},
		{"target", func(a *Action) *Action { return a.Target("#events") }, "hx-target", "#events"},
		{"target this", (*Action).TargetThis, "hx-target", "this"},
		{"closest", func(a *Action) *Action { return a.TargetClosest(".faq-item") }, "hx-target", "closest .faq-item"},
		{"find", func(a *Action) *Action { return a.TargetFind(".slides") }, "hx-target", "find .slides"},
		{"next", func(a *Action) *Action { return a.TargetNext("div") }, "hx-target", "next div"},
		{"previous", func(a *Action) *Action { return a.TargetPrevious("div") }, "hx-target", "previous div"},
		{"swap inner", (*Action).SwapInner, "hx-swap", "innerHTML"},
		{"swap before end", (*Action).SwapBeforeEnd, "hx-swap", "beforeend"},
		{"swap after end", (*Action).SwapAfterEnd, "hx-swap", "afterend"},
		{"swap before begin", (*Action).SwapBeforeBegin, "hx-swap", "beforebegin"},
		{"swap after begin", (*Action).SwapAfterBegin, "hx-swap", "afterbegin"},
		{"swap delete", (*Action).SwapDelete, "hx-swap", "delete"},
		{"swap none", (*Action).SwapNone, "hx-swap", "none"},
		{"raw trigger", func(a *Action) *Action { return a.Trigger("click once") }, "hx-trigger", "click once"},
		{"every seconds", func(a *Action) *Action { return a.Every(8 * time.Second) }, "hx-trigger", "every 8s"},
		{"every millis", func(a *Action) *Action { return a.Every(250 * time.Millisecond) }, "hx-trigger", "every 250ms"},
		{"delay", func(a *Action) *Action { return a.Delay(5 * time.Second) }, "hx-trigger", "load delay:5s"},
		{"on event", func(a *Action) *Action { return a.OnEvent("slide:changed") }, "hx-trigger", "slide:changed from:body"},
		{"on key", func(a *Action) *Action { return a.OnKey("Escape") }, "hx-trigger", "keyup[key=='Escape'] from:body"},
		{"on load", (*Action).OnLoad, "hx-trigger", "load"},
		{"on intersect", (*Action).OnIntersect, "hx-trigger", "intersect once"},
		{"on revealed", (*Action).OnRevealed, "hx-trigger", "revealed"},
		{"confirm", func(a *Action) *Action { return a.Confirm("Clear the form?") }, "hx-confirm", "Clear the form?"},
		{"indicator", func(a *Action) *Action { return a.Indicator("#spinner") }, "hx-indicator", "#spinner"},
		{"push url", (*Action).PushURL, "hx-push-url", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := tt.build(NewAction(u, http.MethodPost)).Attrs()
			if got := attrs[tt.key]; got != tt.want {
				t.Errorf("%s = %v, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestAction_Method(t *testing.T) {
	for _, m := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		a := NewAction("/u", m)
		if a.Method() != m {
			t.Errorf("Method() = %q, want %q", a.Method(), m)
		}
	}

	a := NewAction("/u", "")
	if a.Method() != http.MethodGet {
		t.Errorf("empty method = %q, want GET", a.Method())
	}
	if _, ok := a.Attrs()["hx-get"]; !ok {
		t.Errorf("attrs = %v", a.Attrs())
	}
}

func TestAction_OmitsUnsetAttributes(t *testing.T) {
	attrs := NewAction("/u", http.MethodGet).Attrs()
	for _, key := range []string{"hx-target", "hx-trigger", "hx-confirm", "hx-indicator", "hx-push-url", "hx-vals"} {
		if _, ok := attrs[key]; ok {
			t.Errorf("%s set on a bare action", key)
		}
	}
}

func TestAction_LastTriggerWins(t *testing.T) {
	a := NewAction("/u", http.MethodPost).Delay(time.Second).OnKey("Escape")
	if got := a.Attrs()["hx-trigger"]; got != "keyup[key=='Escape'] from:body" {
		t.Errorf("hx-trigger = %v", got)
	}
}

func TestAction_Vals(t *testing.T) {
	a := NewAction("/u", http.MethodPost).
		Vals(map[string]any{"id": "faq-donate"}).
		Vals(map[string]any{"index": 2})

	raw, ok := a.Attrs()["hx-vals"].(string)
	if !ok {
		t.Fatalf("hx-vals = %v", a.Attrs()["hx-vals"])
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("hx-vals is not JSON: %v", err)
	}
	if got["id"] != "faq-donate" || got["index"] != float64(2) {
		t.Errorf("hx-vals = %s", raw)
	}
}

func TestAction_Chaining(t *testing.T) {
	attrs := NewAction("/_c/faq-1/toggle", http.MethodPost).
		Target("#faq").
		SwapInner().
		Indicator(".loading").
		Attrs()

	want := templ.Attributes{
		"hx-post":      "/_c/faq-1/toggle",
		"hx-target":    "#faq",
		"hx-swap":      "innerHTML",
		"hx-indicator": ".loading",
	}
	if len(attrs) != len(want) {
		t.Fatalf("attrs = %v", attrs)
	}
	for k, v := range want {
		if attrs[k] != v {
			t.Errorf("%s = %v, want %v", k, attrs[k], v)
		}
	}
}

func TestAction_AsLink(t *testing.T) {
	a := NewAction("/_c/events-1/?p=abc", http.MethodGet)
	if got := a.AsLink()["href"]; got != "/_c/events-1/?p=abc" {
		t.Errorf("href = %v", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{90 * time.Second, "90s"},
		{1500 * time.Millisecond, "1500ms"},
		{2*time.Second + time.Millisecond, "2001ms"},
		{999 * time.Millisecond, "999ms"},
		{100 * time.Millisecond, "100ms"},
		{500 * time.Microsecond, "1ms"},
		{1500 * time.Microsecond, "2ms"},
		{0, "1ms"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
