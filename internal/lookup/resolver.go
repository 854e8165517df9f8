package lookup

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"regwizard/internal/platform/metrics"
)

// Resolver is the composite lookup path: fresh cache, then the network,
// then any stale entry as a fallback. Only when no entry has ever existed
// does a network failure reach the caller. Concurrent misses for one code
// collapse into a single network call.
type Resolver struct {
	cache   *Cache
	client  Client
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	group   singleflight.Group
}

type ResolverOption func(*Resolver)

func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) ResolverOption {
	return func(r *Resolver) {
		r.metrics = m
	}
}

func NewResolver(cache *Cache, client Client, opts ...ResolverOption) (*Resolver, error) {
	if cache == nil {
		return nil, fmt.Errorf("cache is required")
	}
	if client == nil {
		return nil, fmt.Errorf("lookup client is required")
	}

	r := &Resolver{
		cache:  cache,
		client: client,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer: otel.Tracer("regwizard/lookup"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve returns the location for code, consulting the cache before any
// network call.
func (r *Resolver) Resolve(ctx context.Context, code string) (Location, error) {
	if loc, ok := r.cache.Get(code); ok {
		r.metrics.IncrementLookupCacheHits()
		return loc, nil
	}

	v, err, _ := r.group.Do(code, func() (any, error) {
		loc, err := r.resolveMiss(ctx, code)
		if err != nil {
			return nil, err
		}
		return loc, nil
	})
	if err != nil {
		return Location{}, err
	}
	return v.(Location), nil
}

func (r *Resolver) resolveMiss(ctx context.Context, code string) (Location, error) {
	// A caller that lost the flight-group race may find the winner's
	// result already cached.
	if loc, ok := r.cache.Get(code); ok {
		r.metrics.IncrementLookupCacheHits()
		return loc, nil
	}

	ctx, span := r.tracer.Start(ctx, "lookup.resolve",
		trace.WithAttributes(attribute.String("lookup.code", code)))
	defer span.End()

	loc, err := r.client.Lookup(ctx, code)
	if err != nil {
		if stale, age, ok := r.cache.GetStale(code); ok {
			r.logger.WarnContext(ctx, "lookup failed, serving stale cache entry",
				"code", code,
				"age", age.Round(time.Second).String(),
				"error", err,
			)
			r.metrics.IncrementLookupStaleFallbacks()
			span.AddEvent("served stale cache entry")
			return stale, nil
		}
		r.metrics.IncrementLookupFailures()
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed with no fallback")
		return Location{}, fmt.Errorf("lookup %s: %w", code, err)
	}

	r.cache.Set(code, loc)
	r.metrics.IncrementLookupCacheMisses()
	return loc, nil
}
