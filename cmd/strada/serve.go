package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/strada-dev/strada/internal/config"
	"github.com/strada-dev/strada/pkg/history"
	"github.com/strada-dev/strada/pkg/metrics"
	"github.com/strada-dev/strada/pkg/navigator"
	"github.com/strada-dev/strada/pkg/router"
)

func serveCmd() *cobra.Command {
	var (
		dir  string
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the route manifest as a resolution service",
		Long: `Serve the route manifest over HTTP.

Every request is resolved against the route tree: manifest redirects
are answered as HTTP redirects, matches are reported as JSON. Browser
clients can connect to /_strada/ws and drive a live navigation engine
over WebSocket.

Examples:
  strada serve
  strada serve --port=8080 --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(dir, host, port)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Project directory containing strada.json")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from strada.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from strada.json)")

	return cmd
}

// matchResponse is the JSON report for one matched route.
type matchResponse struct {
	Pattern string            `json:"pattern"`
	Path    string            `json:"path"`
	Params  map[string]string `json:"params,omitempty"`
}

func runServe(dir, host string, port int) error {
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}
	if host != "" {
		cfg.Server.Host = host
	}
	if port != 0 {
		cfg.Server.Port = port
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	defs := cfg.Definitions()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(metrics.WithNamespace(cfg.Metrics.Namespace))
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	r.Get("/_strada/ws", serveWS(cfg, defs, logger, m))
	r.NotFound(serveResolve(cfg, defs, logger, m))

	printBanner()
	success("serving %d route(s) on http://%s", len(cfg.Routes), cfg.Address())
	if cfg.Metrics.Enabled {
		info("metrics at /metrics")
	}
	info("live navigation at /_strada/ws")

	return http.ListenAndServe(cfg.Address(), r)
}

// serveResolve resolves each request's path in server mode and reports the
// outcome: a manifest redirect becomes an HTTP redirect, a match becomes a
// JSON route report.
func serveResolve(cfg *config.Config, defs []router.Definition, logger *slog.Logger, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		src := history.NewRequestSource(req)
		eng, err := navigator.New(defs, navigator.Options{
			Base:    cfg.Base,
			Source:  src,
			Logger:  logger,
			Metrics: m,
			Server:  true,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer eng.Close()

		out := eng.Out()
		if out.URL != "" {
			http.Redirect(w, req, out.URL, http.StatusFound)
			return
		}
		if len(out.Matches) == 0 {
			http.NotFound(w, req)
			return
		}

		report := make([]matchResponse, len(out.Matches))
		for i, match := range out.Matches {
			report[i] = matchResponse{
				Pattern: match.Route.Pattern,
				Path:    match.Path,
				Params:  match.Params,
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.Warn("response encode failed", "err", err)
		}
	}
}

// serveWS upgrades the connection and runs a live navigation engine against
// it: the client reports location changes, the engine pushes committed
// navigations back.
func serveWS(cfg *config.Config, defs []router.Definition, logger *slog.Logger, m *metrics.Metrics) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}

	return func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "err", err)
			return
		}
		defer conn.Close()

		src := history.NewWebSocketSource(conn, "/", logger)
		eng, err := navigator.New(defs, navigator.Options{
			Base:    cfg.Base,
			Source:  src,
			Logger:  logger,
			Metrics: m,
		})
		if err != nil {
			logger.Error("engine build failed", "err", err)
			return
		}
		defer eng.Close()

		if err := src.Run(req.Context()); err != nil {
			logger.Debug("websocket session ended", "err", err)
		}
	}
}
