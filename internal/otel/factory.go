package otel

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// MetricFactory creates instruments on the global meter under a name prefix.
// Instruments created before Init delegate to the provider installed later.
type MetricFactory struct {
	meter  metric.Meter
	prefix string
}

func NewFactory(meterName, prefix string) *MetricFactory {
	return &MetricFactory{
		meter:  otel.Meter(meterName),
		prefix: prefix,
	}
}

func (f *MetricFactory) name(suffix string) string {
	if f.prefix == "" {
		return suffix
	}
	return f.prefix + "." + suffix
}

// must panics on instrument errors; they only come from invalid names.
func must[T any](target *T, name string, inst T, err error) {
	if err != nil {
		panic(fmt.Sprintf("create instrument %s: %v", name, err))
	}
	*target = inst
}

func (f *MetricFactory) Int64Counter(target *metric.Int64Counter, name string, options ...metric.Int64CounterOption) {
	full := f.name(name)
	inst, err := f.meter.Int64Counter(full, options...)
	must(target, full, inst, err)
}

func (f *MetricFactory) Int64UpDownCounter(target *metric.Int64UpDownCounter, name string, options ...metric.Int64UpDownCounterOption) {
	full := f.name(name)
	inst, err := f.meter.Int64UpDownCounter(full, options...)
	must(target, full, inst, err)
}

func (f *MetricFactory) Float64Histogram(target *metric.Float64Histogram, name string, options ...metric.Float64HistogramOption) {
	full := f.name(name)
	inst, err := f.meter.Float64Histogram(full, options...)
	must(target, full, inst, err)
}
