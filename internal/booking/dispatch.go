// Package booking decides how a call to action reaches the hosted booking
// widget: in place on small screens, in a new browsing context on desktop.
package booking

import "strings"

// DefaultDesktopBreakpointPx is the narrowest viewport treated as desktop.
const DefaultDesktopBreakpointPx = 768

const (
	// TargetSelf lets the browser follow the link in the current context.
	TargetSelf = "_self"
	// TargetBlank opens a new browsing context.
	TargetBlank = "_blank"
	// NewContextFeatures severs the opener so the widget cannot reach back.
	NewContextFeatures = "noopener,noreferrer"
)

// Destinations are the two opaque booking widget addresses.
type Destinations struct {
	Tour string
	Call string
}

// IsTour reports whether href is the "book a tour" widget.
func (d Destinations) IsTour(href string) bool {
	href = strings.TrimSpace(href)
	return href != "" && href == strings.TrimSpace(d.Tour)
}

// Action tells the page what to do with an activation event.
type Action struct {
	PreventDefault bool   `json:"prevent_default"`
	OpenURL        string `json:"open_url,omitempty"`
	Target         string `json:"target"`
	Features       string `json:"features,omitempty"`
}

// DefaultNavigation is the no-op action: the anchor's own href is followed.
func DefaultNavigation() Action {
	return Action{Target: TargetSelf}
}

// ShouldOpenInNewTab applies the default breakpoint. The comparison is
// inclusive, so exactly 768px is desktop, and a zero width is never desktop.
func ShouldOpenInNewTab(viewportWidthPx int) bool {
	return viewportWidthPx >= DefaultDesktopBreakpointPx
}

// Dispatcher applies the breakpoint rule against configured destinations.
type Dispatcher struct {
	destinations Destinations
	breakpointPx int
}

// NewDispatcher returns a dispatcher; a non-positive breakpoint falls back to the default.
func NewDispatcher(dest Destinations, breakpointPx int) *Dispatcher {
	if breakpointPx <= 0 {
		breakpointPx = DefaultDesktopBreakpointPx
	}
	return &Dispatcher{destinations: dest, breakpointPx: breakpointPx}
}

// Destinations returns the configured widget addresses.
func (d *Dispatcher) Destinations() Destinations {
	return d.destinations
}

// BreakpointPx returns the desktop breakpoint in use.
func (d *Dispatcher) BreakpointPx() int {
	return d.breakpointPx
}

// ShouldOpenInNewTab reports whether the viewport counts as desktop.
func (d *Dispatcher) ShouldOpenInNewTab(viewportWidthPx int) bool {
	if viewportWidthPx <= 0 {
		return false
	}
	return viewportWidthPx >= d.breakpointPx
}

// Dispatch handles a tour activation. On mobile it takes no action so the
// default same-context navigation completes; on desktop it suppresses the
// default and opens the tour widget in a new, unrelated context.
func (d *Dispatcher) Dispatch(viewportWidthPx int) Action {
	if !d.ShouldOpenInNewTab(viewportWidthPx) {
		return DefaultNavigation()
	}
	return Action{
		PreventDefault: true,
		OpenURL:        d.destinations.Tour,
		Target:         TargetBlank,
		Features:       NewContextFeatures,
	}
}

// DispatchLink routes only tour-flagged links through Dispatch; every other
// link keeps its default navigation.
func (d *Dispatcher) DispatchLink(href string, tour bool, viewportWidthPx int) Action {
	if !tour && !d.destinations.IsTour(href) {
		return DefaultNavigation()
	}
	return d.Dispatch(viewportWidthPx)
}
