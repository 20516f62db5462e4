// Package server exposes the hrvxo-music operations over HTTP.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support. [BasicRouter] implements
// it on top of gorilla/mux with method filtering. [Middleware] registered with Use wraps every
// request, including preflight and unmatched ones, in the order it was added.
//
// # Handlers
//
// Handlers implement the [Handler] interface and describe their own [Route] list. [API] serves:
//   - GET /health : liveness, independent of credentials
//   - POST /search : song search
//   - POST /create-playlist : private playlist creation
//
// Failures are written as {"detail": "..."} with the status given by the services error kind:
// validation 400, credentials 503, upstream 502.
//
// # Middleware
//
// [Recover], [Logging], [CORS] and [RateLimit] are installed by [NewHandler]. The rate limiter is
// per client IP and disabled unless a positive rate is configured.
package server
