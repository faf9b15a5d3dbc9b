// Package hxpanel serves interactive page widgets as server-rendered HTMX
// components written with templ.
//
// Each widget (a disclosure group, a carousel, a toggle, a validated form)
// is a component that embeds *Component[P], where P is the widget's props:
// the small piece of state that travels to the browser and back with every
// request. The widget's state machine lives in the widget/ packages; the
// component only restores it from props, applies an action and renders.
//
//	type FAQ struct {
//	    *hxpanel.Component[FAQProps]
//	    panels []content.Panel
//	}
//
// # Lifecycle
//
// Components implement two interfaces:
//   - Hydrater[P]: Hydrate(ctx, *P) rebuilds request state from props
//   - Renderer[P]: Render(ctx, P) produces the markup
//
// Hydrate runs before every handler and render. Render runs for GET requests
// and after every handler that returns OK.
//
// # Actions
//
// Actions are registered by name and dispatched by the component itself:
//
//	c.Action("toggle", c.handleToggle)
//	c.Action("advance", c.handleAdvance).Method(http.MethodGet)
//
// Templates build requests with Call, which panics on unknown names so typos
// fail on first render rather than in the browser:
//
//	c.Call("next", props).Target("#events").Attrs()
//	c.Call("advance", props).Delay(5 * time.Second).Attrs()
//
// A Delay trigger fires once after the element loads. Because every action
// re-renders the element, a manual navigation naturally restarts the wait.
//
// # Props security
//
// Props ride in the p query parameter, msgpack encoded, in one of two modes:
//   - Signed (default): visible but tamper-proof
//   - Encrypted: AES-GCM, opaque to clients (call Sensitive)
//
// Mutating requests must carry HX-Request: true, which browsers will not
// send cross-origin without a preflight.
//
// # Communication
//
// Handlers report back through the Result they return: toasts via Flash,
// which are swapped into #toasts out of band, and events via Trigger, which
// other components can listen for with OnEvent.
//
//	return hxpanel.OK(props).Flash(hxpanel.FlashSuccess, "Successfully subscribed to our newsletter!")
//
// # Registration
//
//	reg := hxpanel.NewRegistry(secret)
//	reg.Add(faq, events, donation)
//	mux.Handle(hxpanel.DefaultBasePath, reg.Handler())
//
// Add checks every component's methods up front and panics on mistakes.
// To serve components elsewhere, call SetBasePath before Add; URLs built by
// Call and Refresh follow it.
package hxpanel
