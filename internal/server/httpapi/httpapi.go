// Package httpapi serves the read-only HTTP surface of the ledger: protocol
// and user status, health and prometheus metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/api"
	"github.com/dmitrijs2005/lockstake/internal/logging"
	"github.com/dmitrijs2005/lockstake/internal/server/services"
)

type StatusProvider interface {
	ProtocolStatus(ctx context.Context) (*services.ProtocolStatus, error)
	UserStatus(ctx context.Context, user accounts.Identity) (*services.UserStatus, error)
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HTTPServer struct {
	address string
	router  *mux.Router
	logger  logging.Logger
}

func NewHTTPServer(address string, l logging.Logger, sp StatusProvider, db Pinger, metrics http.Handler) *HTTPServer {
	s := &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
	}
	s.router = NewRouter(sp, db, metrics)
	return s
}

// NewRouter wires the routes.
func NewRouter(sp StatusProvider, db Pinger, metrics http.Handler) *mux.Router {
	h := &handlers{status: sp, db: db}

	router := mux.NewRouter()
	router.Path("/healthz").Methods(http.MethodGet).HandlerFunc(wrap(h.health))
	router.Path("/status").Methods(http.MethodGet).HandlerFunc(wrap(h.protocolStatus))
	router.Path("/users/{identity}/status").Methods(http.MethodGet).HandlerFunc(wrap(h.userStatus))
	if metrics != nil {
		router.Path("/metrics").Methods(http.MethodGet).Handler(metrics)
	}
	return router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type handlers struct {
	status StatusProvider
	db     Pinger
}

func (h *handlers) health(w http.ResponseWriter, req *http.Request) error {
	if err := h.db.PingContext(req.Context()); err != nil {
		return &httpError{code: http.StatusServiceUnavailable, msg: "database unavailable"}
	}
	return writeJSON(w, map[string]string{"status": "OK"})
}

func (h *handlers) protocolStatus(w http.ResponseWriter, req *http.Request) error {
	ps, err := h.status.ProtocolStatus(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, ps.Message())
}

func (h *handlers) userStatus(w http.ResponseWriter, req *http.Request) error {
	id := mux.Vars(req)["identity"]
	us, err := h.status.UserStatus(req.Context(), accounts.Identity(id))
	if err != nil {
		return err
	}
	return writeJSON(w, us.Message())
}

type httpError struct {
	code int
	msg  string
}

func (e *httpError) Error() string { return e.msg }

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// wrap turns an error-returning handler into an http.HandlerFunc. Ledger
// errors are classified the same way the gRPC API classifies them.
func wrap(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := f(w, req)
		if err == nil {
			return
		}

		var he *httpError
		if !errors.As(err, &he) {
			st, _ := status.FromError(api.Status(err))
			he = &httpError{code: httpCode(st.Code()), msg: st.Message()}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(he.code)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": he.msg})
	}
}

func httpCode(c codes.Code) int {
	switch c {
	case codes.InvalidArgument, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.FailedPrecondition:
		return http.StatusConflict
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
