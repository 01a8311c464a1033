// Package browser abstracts the embedded browser window the interactive
// authorization flow drives. The flow only depends on the Surface
// boundary; the webview-backed implementation lives alongside it.
package browser

import "fmt"

// NavigationFunc is invoked synchronously on the UI event loop for every
// attempted navigation. Returning true lets the surface continue loading
// the URL; returning false suppresses the navigation because the URL was
// recognized and handed off for background processing. It must never
// block.
type NavigationFunc func(url string) bool

// Surface is an embedded browser window.
type Surface interface {
	// Run shows the window at startURL and blocks until the window
	// closes. It must be called from the program's main context.
	Run(startURL string) error

	// LoadURL navigates the surface. Only call it on the UI event loop,
	// via Dispatch.
	LoadURL(url string)

	// Close requests the window to close and Run to return. Only call it
	// on the UI event loop, via Dispatch.
	Close()

	// Dispatch schedules fn onto the UI event loop. It is safe to call
	// from any goroutine.
	Dispatch(fn func())
}

// Options configure a new surface.
type Options struct {
	Title      string
	Width      int
	Height     int
	Debug      bool
	OnNavigate NavigationFunc
}

// Error means the browser surface could not be constructed or driven.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to create browser window: %s", e.Reason)
}
