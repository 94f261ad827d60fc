// Package middleware provides HTTP middleware for the tether preview server.
//
// Every middleware has the func(http.Handler) http.Handler shape, so it can
// be mounted on a chi router or wrapped around any handler:
//
//	r := chi.NewRouter()
//	r.Use(
//	    middleware.OpenTelemetry(middleware.WithTracerName("tether")),
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	    middleware.Logging(logger),
//	)
//
// # OpenTelemetry
//
// OpenTelemetry starts a server span per request named after the method
// and path. Spans go to the global tracer provider; configure it in main()
// before serving.
//
// # Prometheus
//
// Prometheus records:
//   - tether_http_requests_total: requests by method and status code
//   - tether_http_request_duration_seconds: request duration by method
//
// Expose them with promhttp.HandlerFor on the same registry.
package middleware
