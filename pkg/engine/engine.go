package engine

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tether/internal/errors"
	"github.com/vango-dev/tether/pkg/dom"
	"github.com/vango-dev/tether/pkg/live"
)

// Engine runs template operations with instrumentation.
type Engine struct {
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *metrics
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Engine{
		logger:  config.Logger.With("component", "engine"),
		tracer:  otel.Tracer(config.TracerName),
		metrics: metricsFor(config),
	}
}

// Render renders t to markup against data.
func (e *Engine) Render(ctx context.Context, t *live.Template, data any) (string, error) {
	var markup string
	err := e.run(ctx, "render", nil, func(ctx context.Context, span trace.Span) error {
		var err error
		markup, err = t.HTML(live.NewContext(e.meta(nil), data))
		span.SetAttributes(attribute.Int("tether.bytes", len(markup)))
		return err
	})
	return markup, err
}

// Build creates live nodes for t against data together with their bindings.
func (e *Engine) Build(ctx context.Context, t *live.Template, data any) (*live.Fragment, error) {
	var frag *live.Fragment
	err := e.run(ctx, "build", nil, func(ctx context.Context, span trace.Span) error {
		var err error
		frag, err = t.Fragment(live.NewContext(e.meta(nil), data))
		if frag != nil {
			span.SetAttributes(attribute.Int("tether.bindings", len(frag.Bindings)))
		}
		return err
	})
	return frag, err
}

// Hydrate parses server-rendered markup and attaches the bindings of t,
// built against data, to the parsed nodes. The returned fragment's Root is
// the parsed tree.
func (e *Engine) Hydrate(ctx context.Context, t *live.Template, markup string, data any) (*live.Fragment, error) {
	var result *live.Fragment
	err := e.run(ctx, "hydrate", nil, func(ctx context.Context, span trace.Span) error {
		existing, err := dom.Parse(markup)
		if err != nil {
			return err
		}

		// Bindings are counted once hydration succeeded.
		var pending []live.Binding
		meta := &live.ContextMeta{
			OnAdd:  func(b live.Binding) { pending = append(pending, b) },
			Logger: e.logger,
		}
		frag, err := t.Fragment(live.NewContext(meta, data))
		if err != nil {
			return err
		}

		if err := live.ReplaceBindings(existing, frag); err != nil {
			code := errors.CodeOf(err)
			e.metrics.hydrationMismatches.WithLabelValues(code).Inc()
			span.SetAttributes(attribute.String("tether.mismatch", code))
			return err
		}
		for _, b := range pending {
			e.countBinding(b)
		}

		span.SetAttributes(attribute.Int("tether.bindings", len(frag.Bindings)))
		result = &live.Fragment{Root: existing, Bindings: frag.Bindings}
		return nil
	})
	return result, err
}

// Context returns a root context for data whose bindings are counted in
// the engine metrics. Derive Child or ChildAlias scopes from it to reach
// bindings nested in blocks, branches or list items.
func (e *Engine) Context(data any) *live.Context {
	return live.NewContext(e.meta(nil), data)
}

// Update re-evaluates b against lc, which must be the scope b was built in,
// and returns the bindings created by structural changes.
func (e *Engine) Update(ctx context.Context, b live.Binding, lc *live.Context) ([]live.Binding, error) {
	return e.update(ctx, "update", b, lc, func(lc *live.Context) error {
		return b.Update(lc)
	})
}

// Insert renders count new items of b at index. The sequence in lc must
// already hold them.
func (e *Engine) Insert(ctx context.Context, b *live.EachBinding, lc *live.Context, index, count int) ([]live.Binding, error) {
	return e.update(ctx, "insert", b, lc, func(lc *live.Context) error {
		return b.Insert(lc, index, count)
	}, attribute.Int("tether.index", index), attribute.Int("tether.count", count))
}

// Remove tears down count items of b at index. The sequence in lc must
// already be without them.
func (e *Engine) Remove(ctx context.Context, b *live.EachBinding, lc *live.Context, index, count int) ([]live.Binding, error) {
	return e.update(ctx, "remove", b, lc, func(lc *live.Context) error {
		return b.Remove(lc, index, count)
	}, attribute.Int("tether.index", index), attribute.Int("tether.count", count))
}

// Move relocates count items of b. The sequence in lc must already be
// reordered.
func (e *Engine) Move(ctx context.Context, b *live.EachBinding, lc *live.Context, from, to, count int) ([]live.Binding, error) {
	return e.update(ctx, "move", b, lc, func(lc *live.Context) error {
		return b.Move(lc, from, to, count)
	}, attribute.Int("tether.from", from), attribute.Int("tether.to", to), attribute.Int("tether.count", count))
}

// update runs fn with lc rebound to a meta that counts and collects the
// bindings created during the call.
func (e *Engine) update(ctx context.Context, op string, b live.Binding, lc *live.Context, fn func(*live.Context) error, attrs ...attribute.KeyValue) ([]live.Binding, error) {
	var created []live.Binding
	kind := string(b.Kind())
	attrs = append(attrs, attribute.String("tether.kind", kind))

	err := e.run(ctx, op, attrs, func(ctx context.Context, span trace.Span) error {
		err := fn(lc.WithMeta(e.meta(&created)))
		e.metrics.bindingUpdates.WithLabelValues(kind, status(err)).Inc()
		span.SetAttributes(attribute.Int("tether.bindings", len(created)))
		return err
	})
	return created, err
}

// meta returns a ContextMeta that counts created bindings and optionally
// collects them.
func (e *Engine) meta(collect *[]live.Binding) *live.ContextMeta {
	return &live.ContextMeta{
		OnAdd: func(b live.Binding) {
			e.countBinding(b)
			if collect != nil {
				*collect = append(*collect, b)
			}
		},
		Logger: e.logger,
	}
}

func (e *Engine) countBinding(b live.Binding) {
	e.metrics.bindingsCreated.WithLabelValues(string(b.Kind())).Inc()
}

// run executes fn inside a span and records the operation.
func (e *Engine) run(ctx context.Context, op string, attrs []attribute.KeyValue, fn func(context.Context, trace.Span) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := e.tracer.Start(ctx, "tether."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx, span)
	duration := time.Since(start)

	e.metrics.operationDuration.WithLabelValues(op).Observe(duration.Seconds())
	e.metrics.operationsTotal.WithLabelValues(op, status(err)).Inc()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.WarnContext(ctx, "operation failed",
			"op", op,
			"code", errors.CodeOf(err),
			"error", err)
		return err
	}

	span.SetStatus(codes.Ok, "")
	e.logger.DebugContext(ctx, "operation complete",
		"op", op,
		"duration", duration)
	return nil
}
