package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/tether/internal/errors"
	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/engine"
	"github.com/vango-dev/tether/pkg/middleware"
)

func serveCmd(a *app) *cobra.Command {
	var (
		dataPath string
		addr     string
	)

	cmd := &cobra.Command{
		Use:   "serve TEMPLATE",
		Short: "Serve a live preview of a template",
		Long: `Serve a template over HTTP. The template and data file are reloaded on
every request, so edits show up on refresh.

Routes:
  /          rendered markup
  /fragment  markup of a built live fragment
  /bindings  bindings created by a build, as JSON
  /metrics   Prometheus metrics

Examples:
  tether serve page.yaml --data data.yaml
  tether serve page.yaml --addr :8080`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Address()
			}

			reg := prometheus.NewRegistry()
			eng := engine.New(
				engine.WithLogger(a.logger),
				engine.WithNamespace(a.cfg.Metrics.Namespace),
				engine.WithSubsystem(a.cfg.Metrics.Subsystem),
				engine.WithTracerName(a.cfg.Tracing.TracerName),
				engine.WithRegistry(reg),
			)

			srv := &http.Server{
				Addr:              addr,
				Handler:           newPreviewHandler(a, eng, reg, args[0], dataPath),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()
			success(cmd.OutOrStdout(), "Serving %s on http://%s", args[0], addr)

			select {
			case err := <-errCh:
				if err != nil && err != http.ErrServerClosed {
					return errors.Newf(errors.CategoryCLI, "preview server failed on %s", addr).Wrap(err)
				}
				return nil
			case <-ctx.Done():
			}

			a.logger.Info("shutting down preview server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Data file (YAML or JSON)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}

// bindingInfo describes one binding in the /bindings response.
type bindingInfo struct {
	Kind string `json:"kind"`
	Len  *int   `json:"len,omitempty"`
}

func newPreviewHandler(a *app, eng *engine.Engine, reg *prometheus.Registry, templatePath, dataPath string) http.Handler {
	r := chi.NewRouter()
	r.Use(
		chimw.Recoverer,
		middleware.OpenTelemetry(middleware.WithTracerName(a.cfg.Tracing.TracerName)),
		middleware.Prometheus(
			middleware.WithRegistry(reg),
			middleware.WithNamespace(a.cfg.Metrics.Namespace),
		),
		middleware.Logging(a.logger),
	)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		tmpl, data, err := a.load(templatePath, dataPath)
		if err != nil {
			previewError(w, a.logger, err)
			return
		}
		markup, err := eng.Render(r.Context(), tmpl, data)
		if err != nil {
			previewError(w, a.logger, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(markup))
	})

	r.Get("/fragment", func(w http.ResponseWriter, r *http.Request) {
		tmpl, data, err := a.load(templatePath, dataPath)
		if err != nil {
			previewError(w, a.logger, err)
			return
		}
		frag, err := eng.Build(r.Context(), tmpl, data)
		if err != nil {
			previewError(w, a.logger, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(dom.InnerHTML(frag.Root)))
	})

	r.Get("/bindings", func(w http.ResponseWriter, r *http.Request) {
		tmpl, data, err := a.load(templatePath, dataPath)
		if err != nil {
			previewError(w, a.logger, err)
			return
		}
		frag, err := eng.Build(r.Context(), tmpl, data)
		if err != nil {
			previewError(w, a.logger, err)
			return
		}
		infos := make([]bindingInfo, 0, len(frag.Bindings))
		for _, b := range frag.Bindings {
			info := bindingInfo{Kind: string(b.Kind())}
			if each, ok := b.(interface{ Len() int }); ok {
				n := each.Len()
				info.Len = &n
			}
			infos = append(infos, info)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(infos); err != nil {
			a.logger.Warn("encode bindings", "error", err)
		}
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return r
}

// previewError reports err as plain text. Template and data problems are
// the client's, anything else is a server error.
func previewError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()
	var te *errors.TetherError
	if errors.As(err, &te) {
		if te.Category == errors.CategoryTemplate {
			status = http.StatusUnprocessableEntity
		}
		msg = te.FormatCompact()
	}
	logger.Warn("preview failed", "error", err, "code", errors.CodeOf(err))
	http.Error(w, msg, status)
}
