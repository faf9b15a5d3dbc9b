package hxpanel

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// TestResult is the captured output of a component under test.
type TestResult struct {
	HTML            string
	StatusCode      int
	Headers         http.Header
	TriggeredEvents []string
	Flashes         []Flash
	RedirectURL     string
}

// TestableComponent combines Hydrater and Renderer for testing.
type TestableComponent[P any] interface {
	Hydrater[P]
	Renderer[P]
}

// TestRender runs Hydrate and Render directly, with no HTTP or props encoding
// involved. Use TestAction to exercise dispatch and Result handling.
//
//	result, err := hxpanel.TestRender(faq, FAQProps{Open: []string{"faq1"}})
//	if !result.HTMLContains(`aria-expanded="true"`) { ... }
func TestRender[P any](comp TestableComponent[P], props P) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), comp, props)
}

// TestRenderWithContext is TestRender with a caller-supplied context.
func TestRenderWithContext[P any](ctx context.Context, comp TestableComponent[P], props P) (*TestResult, error) {
	if err := comp.Hydrate(ctx, &props); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := comp.Render(ctx, props).Render(ctx, &buf); err != nil {
		return nil, err
	}

	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestAction sends one htmx request straight to a component and captures the
// response. URLs usually come from the component itself:
//
//	result, _ := hxpanel.TestAction(events, events.Call("next", props).URL(), http.MethodPost, nil)
//	if !result.IsOK() { ... }
func TestAction(comp HXComponent, actionURL, method string, formData map[string]string) (*TestResult, error) {
	return NewTestRequest(method, actionURL).WithFormValues(formData).Execute(comp)
}

// TestActionWithContext is TestAction with a caller-supplied context.
func TestActionWithContext(ctx context.Context, comp HXComponent, actionURL, method string, formData map[string]string) (*TestResult, error) {
	return NewTestRequest(method, actionURL).WithFormValues(formData).WithContext(ctx).Execute(comp)
}

// TestGet renders the component at url.
func TestGet(comp HXComponent, url string) (*TestResult, error) {
	return TestAction(comp, url, http.MethodGet, nil)
}

// TestPost posts formData to url.
func TestPost(comp HXComponent, url string, formData map[string]string) (*TestResult, error) {
	return TestAction(comp, url, http.MethodPost, formData)
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HTMLContainsAny checks if the HTML contains any of the given substrings.
func (r *TestResult) HTMLContainsAny(substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(r.HTML, s) {
			return true
		}
	}
	return false
}

// HasEvent checks if an event was triggered.
func (r *TestResult) HasEvent(event string) bool {
	for _, e := range r.TriggeredEvents {
		if e == event {
			return true
		}
	}
	return false
}

// HasFlash checks for a toast with exactly this level and message.
func (r *TestResult) HasFlash(level, message string) bool {
	for _, f := range r.Flashes {
		if f.Level == level && f.Message == message {
			return true
		}
	}
	return false
}

// HasFlashLevel checks for any toast with the given level.
func (r *TestResult) HasFlashLevel(level string) bool {
	for _, f := range r.Flashes {
		if f.Level == level {
			return true
		}
	}
	return false
}

// WasRedirected checks if the response was a redirect.
func (r *TestResult) WasRedirected() bool {
	return r.RedirectURL != ""
}

// RedirectedTo checks if the response was redirected to a specific URL.
func (r *TestResult) RedirectedTo(url string) bool {
	return r.RedirectURL == url
}

// IsOK checks if the status code is 200.
func (r *TestResult) IsOK() bool {
	return r.StatusCode == http.StatusOK
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// HasHeader checks if a header is set with the given value.
func (r *TestResult) HasHeader(key, value string) bool {
	return r.Headers.Get(key) == value
}

// GetHeader returns the value of a header.
func (r *TestResult) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// parseTriggerHeader returns the event names in an HX-Trigger value: either a
// comma-separated list or a JSON object keyed by event name.
func parseTriggerHeader(trigger string) []string {
	trigger = strings.TrimSpace(trigger)
	if trigger == "" {
		return nil
	}

	if strings.HasPrefix(trigger, "{") {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(trigger), &obj); err != nil {
			return nil
		}
		events := make([]string, 0, len(obj))
		for k := range obj {
			events = append(events, k)
		}
		sort.Strings(events)
		return events
	}

	parts := strings.Split(trigger, ",")
	events := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			events = append(events, p)
		}
	}
	return events
}

// parseFlashesFromHTML extracts toasts written by RenderFlashesOOB.
func parseFlashesFromHTML(s string) []Flash {
	var flashes []Flash

	const prefix = `<div class="toast toast-`
	idx := 0
	for {
		start := strings.Index(s[idx:], prefix)
		if start == -1 {
			break
		}
		start += idx + len(prefix)

		levelEnd := strings.Index(s[start:], `"`)
		tagEnd := strings.Index(s[start:], ">")
		if levelEnd == -1 || tagEnd == -1 {
			break
		}
		contentStart := start + tagEnd + 1

		contentEnd := strings.Index(s[contentStart:], "</div>")
		if contentEnd == -1 {
			break
		}

		flashes = append(flashes, Flash{
			Level:   html.UnescapeString(s[start : start+levelEnd]),
			Message: html.UnescapeString(s[contentStart : contentStart+contentEnd]),
		})
		idx = contentStart + contentEnd
	}

	return flashes
}

// TestRequestBuilder builds a request for Execute.
//
//	result, err := hxpanel.NewTestRequest(http.MethodPost, url).
//	    WithFormData("email", "a@b.co").
//	    WithHeader("HX-Trigger", "newsletter-form").
//	    Execute(comp)
type TestRequestBuilder struct {
	method  string
	url     string
	form    url.Values
	headers map[string]string
	ctx     context.Context
}

// NewTestRequest creates a new test request builder.
func NewTestRequest(method, url string) *TestRequestBuilder {
	return &TestRequestBuilder{
		method:  method,
		url:     url,
		form:    make(map[string][]string),
		headers: make(map[string]string),
		ctx:     context.Background(),
	}
}

// WithFormData sets a form field, replacing earlier values.
func (b *TestRequestBuilder) WithFormData(key, value string) *TestRequestBuilder {
	b.form.Set(key, value)
	return b
}

// WithFormValues sets several form fields.
func (b *TestRequestBuilder) WithFormValues(data map[string]string) *TestRequestBuilder {
	for k, v := range data {
		b.form.Set(k, v)
	}
	return b
}

// WithFormList adds a repeated form field, like a group of checkboxes.
func (b *TestRequestBuilder) WithFormList(key string, values ...string) *TestRequestBuilder {
	for _, v := range values {
		b.form.Add(key, v)
	}
	return b
}

// WithHeader adds a header to the request.
func (b *TestRequestBuilder) WithHeader(key, value string) *TestRequestBuilder {
	b.headers[key] = value
	return b
}

// WithContext sets the context for the request.
func (b *TestRequestBuilder) WithContext(ctx context.Context) *TestRequestBuilder {
	b.ctx = ctx
	return b
}

// Execute sends the request to comp. HX-Request is always set, as htmx would.
func (b *TestRequestBuilder) Execute(comp HXComponent) (*TestResult, error) {
	req := httptest.NewRequest(b.method, b.url, strings.NewReader(b.form.Encode()))
	req = req.WithContext(b.ctx)
	req.Header.Set("HX-Request", "true")
	if len(b.form) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range b.headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	comp.HXServeHTTP(rec, req)

	result := &TestResult{
		HTML:        rec.Body.String(),
		StatusCode:  rec.Code,
		Headers:     rec.Header(),
		RedirectURL: rec.Header().Get("HX-Redirect"),
	}
	result.TriggeredEvents = parseTriggerHeader(rec.Header().Get("HX-Trigger"))
	result.Flashes = parseFlashesFromHTML(result.HTML)
	return result, nil
}

// MockHydrater wraps a component with a replacement Hydrate, for rendering
// with hand-built state.
type MockHydrater[P any] struct {
	Component    TestableComponent[P]
	HydrateFunc  func(ctx context.Context, props *P) error
	hydrateProps *P
}

// NewMockHydrater creates a MockHydrater that wraps a component.
func NewMockHydrater[P any](comp TestableComponent[P], hydrateFn func(ctx context.Context, props *P) error) *MockHydrater[P] {
	return &MockHydrater[P]{
		Component:   comp,
		HydrateFunc: hydrateFn,
	}
}

// Hydrate calls the custom hydrate function.
func (m *MockHydrater[P]) Hydrate(ctx context.Context, props *P) error {
	m.hydrateProps = props
	return m.HydrateFunc(ctx, props)
}

// Render delegates to the underlying component.
func (m *MockHydrater[P]) Render(ctx context.Context, props P) templ.Component {
	return m.Component.Render(ctx, props)
}

// LastHydratedProps returns the props from the last Hydrate call.
func (m *MockHydrater[P]) LastHydratedProps() *P {
	return m.hydrateProps
}
