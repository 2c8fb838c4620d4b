// Package httputil provides HTTP server used for agent's service endpoints
// (metrics, health checks).
package httputil

import (
	"fmt"
	"net/http"
	"time"
)

// HTTPSrvPrm groups the required parameters of the Server's constructor.
type HTTPSrvPrm struct {
	// TCP address for the server to listen on, must not be empty.
	Address string

	// Must not be nil.
	Handler http.Handler
}

// Server wraps http.Server with start and graceful stop routines.
//
// Server must be created with New.
type Server struct {
	shutdownTimeout time.Duration

	srv *http.Server
}

const readHeaderTimeout = 10 * time.Second

func panicOnValue(t, n string, v any) {
	panic(fmt.Sprintf("invalid %s %s (%T): %v", t, n, v, v))
}

// New creates a new instance of the Server.
//
// Panics if address is empty, handler is nil or shutdown timeout is not
// positive.
func New(prm HTTPSrvPrm, opts ...Option) *Server {
	switch {
	case prm.Address == "":
		panicOnValue("parameter", "Address", prm.Address)
	case prm.Handler == nil:
		panicOnValue("parameter", "Handler", prm.Handler)
	}

	c := defaultCfg()

	for _, o := range opts {
		o(c)
	}

	if c.shutdownTimeout <= 0 {
		panicOnValue("option", "shutdown timeout", c.shutdownTimeout)
	}

	return &Server{
		shutdownTimeout: c.shutdownTimeout,
		srv: &http.Server{
			Addr:              prm.Address,
			Handler:           prm.Handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Address returns configured listen address.
func (x *Server) Address() string {
	return x.srv.Addr
}
