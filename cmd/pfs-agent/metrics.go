package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	metricsconfig "github.com/nspcc-dev/pfs-agent/cmd/pfs-agent/config/metrics"
	"github.com/nspcc-dev/pfs-agent/misc"
	"github.com/nspcc-dev/pfs-agent/pkg/metrics"
	httputil "github.com/nspcc-dev/pfs-agent/pkg/util/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func initMetrics(c *cfg) {
	if !metricsconfig.Enabled(c.appCfg) {
		c.log.Info("prometheus is disabled")
		return
	}

	c.metrics = metrics.NewAgentMetrics(misc.Version)
}

func serveMetrics(c *cfg) {
	if c.metrics == nil {
		return
	}

	srv := httputil.New(
		httputil.HTTPSrvPrm{
			Address: metricsconfig.Address(c.appCfg),
			Handler: newServiceRouter(c.healthy.Load),
		},
		httputil.WithShutdownTimeout(metricsconfig.ShutdownTimeout(c.appCfg)),
	)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		c.log.Info("start prometheus service", zap.String("address", srv.Address()))

		if err := srv.Serve(); err != nil {
			c.log.Error("prometheus service failure", zap.Error(err))
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		<-c.ctx.Done()

		c.log.Info("shutting down prometheus service...")

		if err := srv.Shutdown(); err != nil {
			c.log.Warn("prometheus service shutdown failure", zap.Error(err))
		}
	}()
}

// newServiceRouter returns handler of service HTTP endpoints: prometheus
// metrics and health status.
func newServiceRouter(healthy func() bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if !healthy() {
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	return r
}
