package lunavdb

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    addCounter      prometheus.Counter
//	    searchHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordAdd(duration time.Duration, err error) {
//	    p.addCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordAdd is called after each Add.
	RecordAdd(duration time.Duration, err error)

	// RecordIndex is called after each full rebuild with the number of
	// items supplied.
	RecordIndex(items int, duration time.Duration)

	// RecordRemove is called after each Remove with the number of ids requested.
	RecordRemove(ids int, duration time.Duration, err error)

	// RecordSearch is called after each search operation.
	// k is the number of neighbors requested, duration is the time taken,
	// err is nil if successful.
	RecordSearch(k int, duration time.Duration, err error)

	// RecordDump is called after each Dump with the size of the blob.
	RecordDump(bytes int, duration time.Duration, err error)

	// RecordLoad is called after each Load with the size of the input.
	RecordLoad(bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(time.Duration, error)         {}
func (NoopMetricsCollector) RecordIndex(int, time.Duration)         {}
func (NoopMetricsCollector) RecordRemove(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSearch(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordDump(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount         atomic.Int64
	AddErrors        atomic.Int64
	AddTotalNanos    atomic.Int64
	IndexCount       atomic.Int64
	IndexItems       atomic.Int64
	RemoveCount      atomic.Int64
	RemoveIDs        atomic.Int64
	RemoveErrors     atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	DumpCount        atomic.Int64
	DumpBytes        atomic.Int64
	DumpErrors       atomic.Int64
	LoadCount        atomic.Int64
	LoadErrors       atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(duration time.Duration, err error) {
	b.AddCount.Add(1)
	b.AddTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordIndex implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIndex(items int, duration time.Duration) {
	b.IndexCount.Add(1)
	b.IndexItems.Add(int64(items))
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(ids int, duration time.Duration, err error) {
	b.RemoveCount.Add(1)
	b.RemoveIDs.Add(int64(ids))
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(k int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordDump implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDump(bytes int, duration time.Duration, err error) {
	b.DumpCount.Add(1)
	if err != nil {
		b.DumpErrors.Add(1)
		return
	}
	b.DumpBytes.Add(int64(bytes))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(bytes int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:       b.AddCount.Load(),
		AddErrors:      b.AddErrors.Load(),
		AddAvgNanos:    avg(b.AddTotalNanos.Load(), b.AddCount.Load()),
		IndexCount:     b.IndexCount.Load(),
		IndexItems:     b.IndexItems.Load(),
		RemoveCount:    b.RemoveCount.Load(),
		RemoveIDs:      b.RemoveIDs.Load(),
		RemoveErrors:   b.RemoveErrors.Load(),
		SearchCount:    b.SearchCount.Load(),
		SearchErrors:   b.SearchErrors.Load(),
		SearchAvgNanos: avg(b.SearchTotalNanos.Load(), b.SearchCount.Load()),
		DumpCount:      b.DumpCount.Load(),
		DumpBytes:      b.DumpBytes.Load(),
		DumpErrors:     b.DumpErrors.Load(),
		LoadCount:      b.LoadCount.Load(),
		LoadErrors:     b.LoadErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount       int64
	AddErrors      int64
	AddAvgNanos    int64
	IndexCount     int64
	IndexItems     int64
	RemoveCount    int64
	RemoveIDs      int64
	RemoveErrors   int64
	SearchCount    int64
	SearchErrors   int64
	SearchAvgNanos int64
	DumpCount      int64
	DumpBytes      int64
	DumpErrors     int64
	LoadCount      int64
	LoadErrors     int64
}
