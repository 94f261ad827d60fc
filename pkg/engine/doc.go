// Package engine wraps template rendering, fragment building, hydration and
// binding updates with tracing, metrics and structured logging.
//
// An Engine is safe for concurrent use. Every call creates its own
// live.ContextMeta, so independent renders never share binding state.
//
//	eng := engine.New(
//	    engine.WithLogger(logger),
//	    engine.WithNamespace("shop"),
//	)
//	markup, err := eng.Render(ctx, tmpl, data)
//
// Spans are named tether.render, tether.build, tether.hydrate and
// tether.update and come from the global OpenTelemetry tracer provider.
package engine
