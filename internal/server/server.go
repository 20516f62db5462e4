package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/hrvxo-music/internal/services"
	"github.com/desertthunder/hrvxo-music/internal/shared"
)

const (
	shutdownTimeout     = 10 * time.Second
	minWriteTimeout     = 90 * time.Second
	writeTimeoutHeadway = 15 * time.Second
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// Route binds an HTTP method and path to a handler.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Handler is implemented by types that own a set of routes.
type Handler interface {
	Routes() []Route // Routes returns the endpoints this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers every route of a custom Handler
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Options configures [NewHandler].
type Options struct {
	Backend        services.Backend
	Logger         *log.Logger
	RateLimitRPS   float64 // requests per second per client IP; 0 disables limiting
	RateLimitBurst int
}

// NewHandler builds the HTTP handler serving the API with the standard middleware chain.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	router := NewBasicRouter()
	router.Use(Recover(logger), Logging(logger), CORS())
	if opts.RateLimitRPS > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		router.Use(RateLimit(NewIPRateLimiter(rate.Limit(opts.RateLimitRPS), burst)))
	}

	router.Handler(NewAPI(opts.Backend, logger))
	return router
}

// New creates an [http.Server] for addr with conservative timeouts.
//
// The write timeout always outlasts upstreamTimeout so an upstream timeout is still answered with a 502.
func New(addr string, handler http.Handler, upstreamTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      writeTimeout(upstreamTimeout),
		IdleTimeout:       2 * time.Minute,
	}
}

func writeTimeout(upstream time.Duration) time.Duration {
	return max(minWriteTimeout, upstream+writeTimeoutHeadway)
}

// Serve runs srv until ctx is canceled, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
		close(serverErrors)
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-serverErrors
}
