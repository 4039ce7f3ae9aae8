package opfgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// The metrics package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordRead is called after each dataset read.
	// bytes is the decoded size, err is nil if successful.
	RecordRead(nodes int, bytes int64, duration time.Duration, err error)

	// RecordWrite is called after each dataset write.
	RecordWrite(nodes int, bytes int64, duration time.Duration, err error)

	// RecordExtract is called after each prototype extraction.
	RecordExtract(prototypes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRead(int, int64, time.Duration, error)  {}
func (NoopMetricsCollector) RecordWrite(int, int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordExtract(int, time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ReadCount       atomic.Int64
	ReadErrors      atomic.Int64
	ReadNodes       atomic.Int64
	ReadBytes       atomic.Int64
	ReadTotalNanos  atomic.Int64
	WriteCount      atomic.Int64
	WriteErrors     atomic.Int64
	WriteNodes      atomic.Int64
	WriteBytes      atomic.Int64
	WriteTotalNanos atomic.Int64
	ExtractCount    atomic.Int64
	ExtractErrors   atomic.Int64
	ExtractedProtos atomic.Int64
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(nodes int, bytes int64, duration time.Duration, err error) {
	b.ReadCount.Add(1)
	b.ReadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReadErrors.Add(1)
		return
	}
	b.ReadNodes.Add(int64(nodes))
	b.ReadBytes.Add(bytes)
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(nodes int, bytes int64, duration time.Duration, err error) {
	b.WriteCount.Add(1)
	b.WriteTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.WriteErrors.Add(1)
		return
	}
	b.WriteNodes.Add(int64(nodes))
	b.WriteBytes.Add(bytes)
}

// RecordExtract implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExtract(prototypes int, _ time.Duration, err error) {
	b.ExtractCount.Add(1)
	if err != nil {
		b.ExtractErrors.Add(1)
		return
	}
	b.ExtractedProtos.Add(int64(prototypes))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ReadCount:       b.ReadCount.Load(),
		ReadErrors:      b.ReadErrors.Load(),
		ReadNodes:       b.ReadNodes.Load(),
		ReadBytes:       b.ReadBytes.Load(),
		ReadAvgNanos:    avg(b.ReadTotalNanos.Load(), b.ReadCount.Load()),
		WriteCount:      b.WriteCount.Load(),
		WriteErrors:     b.WriteErrors.Load(),
		WriteNodes:      b.WriteNodes.Load(),
		WriteBytes:      b.WriteBytes.Load(),
		WriteAvgNanos:   avg(b.WriteTotalNanos.Load(), b.WriteCount.Load()),
		ExtractCount:    b.ExtractCount.Load(),
		ExtractErrors:   b.ExtractErrors.Load(),
		ExtractedProtos: b.ExtractedProtos.Load(),
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
	ReadCount       int64
	ReadErrors      int64
	ReadNodes       int64
	ReadBytes       int64
	ReadAvgNanos    int64
	WriteCount      int64
	WriteErrors     int64
	WriteNodes      int64
	WriteBytes      int64
	WriteAvgNanos   int64
	ExtractCount    int64
	ExtractErrors   int64
	ExtractedProtos int64
}
