package browser

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	webview "github.com/webview/webview_go"
)

// recordingView stands in for the platform webview and records every
// call that reaches it.
type recordingView struct {
	navigations []string
	dispatches  int
	terminates  int
	destroys    int
}

func (r *recordingView) Run()                           {}
func (r *recordingView) Terminate()                     { r.terminates++ }
func (r *recordingView) Dispatch(func())                { r.dispatches++ }
func (r *recordingView) Destroy()                       { r.destroys++ }
func (r *recordingView) Window() unsafe.Pointer         { return nil }
func (r *recordingView) SetTitle(string)                {}
func (r *recordingView) SetSize(int, int, webview.Hint) {}
func (r *recordingView) SetHtml(string)                 {}
func (r *recordingView) Init(string)                    {}
func (r *recordingView) Eval(string)                    {}
func (r *recordingView) Bind(string, interface{}) error { return nil }
func (r *recordingView) Unbind(string) error            { return nil }

var _ webview.WebView = (*recordingView)(nil)

func (r *recordingView) Navigate(url string) {
	r.navigations = append(r.navigations, url)
}

func TestSurfaceIgnoresCallsAfterRun(t *testing.T) {
	view := &recordingView{}
	s := &webviewSurface{view: view}

	assert.NoError(t, s.Run("https://start.example.com"))
	assert.Equal(t, []string{"https://start.example.com"}, view.navigations)
	assert.Equal(t, 1, view.destroys)

	// A worker still holding the surface after the window is gone must
	// never reach the destroyed view.
	s.Dispatch(func() {})
	s.LoadURL("https://late.example.com")
	s.Close()

	assert.Equal(t, 0, view.dispatches)
	assert.Equal(t, 0, view.terminates)
	assert.Equal(t, []string{"https://start.example.com"}, view.navigations)
	assert.Equal(t, 1, view.destroys)
}

func TestSurfaceForwardsCallsWhileRunning(t *testing.T) {
	view := &recordingView{}
	s := &webviewSurface{view: view}

	s.LoadURL("https://account.example.com")
	s.Dispatch(func() {})
	s.Close()

	assert.Equal(t, []string{"https://account.example.com"}, view.navigations)
	assert.Equal(t, 1, view.dispatches)
	assert.Equal(t, 1, view.terminates)
}

func TestHandleNavigationWithoutHookAllows(t *testing.T) {
	s := &webviewSurface{view: &recordingView{}}
	assert.True(t, s.handleNavigation("https://anywhere.example.com"))
}
