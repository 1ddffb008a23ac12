// Package observability records domain events as OpenTelemetry metrics exported
// through the Prometheus registry.
package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider         *metric.MeterProvider
	meter                 otelmetric.Meter
	entitiesCreated       otelmetric.Int64Counter
	assignmentTransitions otelmetric.Int64Counter
}

// New wires an OpenTelemetry meter provider to reg. A nil reg uses the default
// Prometheus registerer, which is what /metrics serves.
func New(serviceName string, reg prometheus.Registerer) (*Observability, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	entitiesCreated, err := meter.Int64Counter(
		"staffing_entities_created",
		otelmetric.WithDescription("Number of candidates, clients, job orders and assignments created"),
	)
	if err != nil {
		return nil, fmt.Errorf("create entities counter: %w", err)
	}

	assignmentTransitions, err := meter.Int64Counter(
		"staffing_assignment_transitions",
		otelmetric.WithDescription("Assignment status changes by source and target status"),
	)
	if err != nil {
		return nil, fmt.Errorf("create transitions counter: %w", err)
	}

	return &Observability{
		meterProvider:         provider,
		meter:                 meter,
		entitiesCreated:       entitiesCreated,
		assignmentTransitions: assignmentTransitions,
	}, nil
}

func (o *Observability) RecordEntityCreated(ctx context.Context, entity string) {
	if o == nil || o.entitiesCreated == nil {
		return
	}
	o.entitiesCreated.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("entity", entity),
	))
}

func (o *Observability) RecordAssignmentTransition(ctx context.Context, from, to string) {
	if o == nil || o.assignmentTransitions == nil {
		return
	}
	o.assignmentTransitions.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	return o.meterProvider.Shutdown(ctx)
}
