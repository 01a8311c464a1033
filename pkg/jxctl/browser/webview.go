package browser

import (
	"runtime"
	"sync"

	webview "github.com/webview/webview_go"
)

// navProbe runs at document start on every page the surface loads and
// reports the location to the host before the page proceeds. The
// platform webview keeps its viewport synced to the window on resize, so
// bounds tracking needs no handling here.
const navProbe = `(function () {
	if (window.__jxctlHooked) { return; }
	window.__jxctlHooked = true;
	window.__jxctlNavigate(window.location.href).then(function (proceed) {
		if (!proceed) { window.stop(); }
	});
})();`

type webviewSurface struct {
	onNavigate NavigationFunc

	// The worker goroutine keeps a handle to the surface after Run has
	// torn the view down. Every view access goes through mu so nothing
	// can reach the toolkit once finished is set.
	mu       sync.Mutex
	view     webview.WebView
	finished bool
}

// New constructs a webview-backed surface. The caller goroutine is
// locked to its OS thread because the underlying toolkit requires the
// event loop to run where the window was created.
func New(opts Options) (Surface, error) {
	runtime.LockOSThread()

	view := webview.New(opts.Debug)
	if view == nil {
		return nil, &Error{Reason: "platform webview unavailable"}
	}
	if opts.Title != "" {
		view.SetTitle(opts.Title)
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 400
	}
	if height <= 0 {
		height = 700
	}
	view.SetSize(width, height, webview.HintNone)

	s := &webviewSurface{view: view, onNavigate: opts.OnNavigate}
	if err := view.Bind("__jxctlNavigate", s.handleNavigation); err != nil {
		view.Destroy()
		return nil, &Error{Reason: err.Error()}
	}
	view.Init(navProbe)
	return s, nil
}

// handleNavigation is called by the injected probe on the UI loop. It
// must return promptly; the decision is a pure classification made by
// the registered NavigationFunc.
func (s *webviewSurface) handleNavigation(url string) bool {
	if s.onNavigate == nil {
		return true
	}
	return s.onNavigate(url)
}

func (s *webviewSurface) Run(startURL string) error {
	stop := startConsentResponder()
	defer stop()

	s.view.Navigate(startURL)
	s.view.Run()
	s.mu.Lock()
	s.finished = true
	s.view.Destroy()
	s.mu.Unlock()
	return nil
}

func (s *webviewSurface) LoadURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return
	}
	s.view.Navigate(url)
}

func (s *webviewSurface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return
	}
	s.view.Terminate()
}

func (s *webviewSurface) Dispatch(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished {
		return
	}
	s.view.Dispatch(fn)
}
