package browser

import (
	"net"
	"net/http"
)

// consentPage is served for the final hop of the login flow, which
// redirects to plain-http localhost. The result travels in the URL
// fragment and never reaches a server; the page exists only so the
// navigation commits into a real document where the injected probe
// runs and reports the full URL, fragment included. Without a listener
// the load fails and the toolkit renders an internal error page where
// user scripts do not run, so the final redirect would go unobserved.
const consentPage = `<!doctype html><html><head><title>jxctl</title></head>` +
	`<body>Completing login.</body></html>`

func serveConsentPage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(consentPage))
}

// startConsentResponder binds the loopback origins localhost can
// resolve to and serves consentPage for the lifetime of the window. The
// returned stop function shuts the server down. Binding can fail on
// either family (privileged port, another launcher instance); whatever
// could be bound is used, and with no listener at all the surface still
// runs, it just cannot observe the final hop.
func startConsentResponder() func() {
	srv := &http.Server{Handler: http.HandlerFunc(serveConsentPage)}
	bound := false
	for _, addr := range []string{"127.0.0.1:80", "[::1]:80"} {
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			continue
		}
		bound = true
		go func() { _ = srv.Serve(ln) }()
	}
	if !bound {
		return func() {}
	}
	return func() { _ = srv.Close() }
}
