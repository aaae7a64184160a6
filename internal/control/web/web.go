package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"

	"media-runtime/internal/chain"
	"media-runtime/internal/intf"
	"media-runtime/internal/logging"
	"media-runtime/internal/modules"
)

const defaultAddr = ":8090"

// Defaults carries the environment-derived settings for the web
// interface; chain options override them per instance.
type Defaults struct {
	Addr         string
	PasswordHash string // bcrypt hash; empty disables basic auth
}

// Web is the "http" control interface: a JSON API over the runtime
// host plus the Prometheus metrics endpoint.
type Web struct {
	srv *http.Server
	ln  net.Listener
}

// Module returns the factory for the web interface. Binding the listen
// address happens inside the factory, so a busy address makes
// resolution move on to the next candidate.
func Module(defaults Defaults) *modules.Factory {
	return &modules.Factory{
		Name:       "http",
		Capability: intf.Capability,
		Score:      40,
		New: func(host modules.Host, cfg *chain.Chain) (modules.Instance, error) {
			addr := cfg.Option("addr", defaults.Addr)
			if addr == "" {
				addr = defaultAddr
			}
			hash := cfg.Option("password", defaults.PasswordHash)

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return nil, fmt.Errorf("web listen failed: %w", err)
			}
			return start(host, ln, hash), nil
		},
	}
}

func start(host modules.Host, ln net.Listener, passwordHash string) *Web {
	w := &Web{
		srv: &http.Server{
			Handler:      newHandler(host, passwordHash),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		ln: ln,
	}
	logging.Info("Web interface listening on %s", ln.Addr())

	go func() {
		if err := w.srv.Serve(ln); err != http.ErrServerClosed {
			logging.Warn("Web interface server error: %v", err)
		}
	}()
	return w
}

// Addr returns the listener address.
func (w *Web) Addr() net.Addr {
	return w.ln.Addr()
}

// Stop shuts the server down, waiting briefly for in-flight requests.
func (w *Web) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := w.srv.Shutdown(ctx); err != nil {
		logging.Warn("Web interface shutdown: %v", err)
		if err := w.srv.Close(); err != nil {
			logging.Debug("Web interface close: %v", err)
		}
	}
}

// newHandler builds the router. Split out from start so tests can
// exercise the API with httptest.
func newHandler(host modules.Host, passwordHash string) http.Handler {
	h := &handlers{host: host}

	r := mux.NewRouter()
	r.HandleFunc("/status", h.status).Methods("GET")
	r.HandleFunc("/playlist", h.playlist).Methods("GET")
	r.HandleFunc("/playlist/items", h.addItem).Methods("POST")
	r.HandleFunc("/interfaces", h.interfaces).Methods("GET")
	r.HandleFunc("/interfaces", h.addInterface).Methods("POST")
	r.HandleFunc("/interfaces/choices", h.choices).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	if passwordHash == "" {
		return r
	}
	return basicAuth(passwordHash, r)
}

// basicAuth gates every route behind a bcrypt-checked password; the
// username field is ignored.
func basicAuth(passwordHash string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, password, ok := r.BasicAuth()
		if !ok || bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="media-runtime"`)
			writeJSONError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
