// Package metrics exposes decoder counters to Prometheus.
//
// Collectors are registered only after Enable. Callers check
// IsMetricsEnabled before recording.
package metrics

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sbc"

var (
	enabled    atomic.Bool
	enableOnce sync.Once
	enableErr  error

	registry = prometheus.NewRegistry()

	framesDecoded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_decoded_total",
		Help:      "Frames decoded, by filter configuration.",
	}, []string{"config"})

	samplesDecoded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "samples_decoded_total",
		Help:      "PCM samples produced, all channels.",
	})

	framesDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "frames_dropped_total",
		Help:      "Frames discarded, by reason.",
	}, []string{"reason"})

	bytesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bytes_skipped_total",
		Help:      "Bytes discarded while searching for a sync word.",
	})

	rtpPackets = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rtp",
		Name:      "packets_total",
		Help:      "RTP packets, by outcome.",
	}, []string{"outcome"})
)

// Enable registers the collectors. Later calls return the first result.
func Enable() error {
	enableOnce.Do(func() {
		for _, c := range []prometheus.Collector{
			framesDecoded, samplesDecoded, framesDropped, bytesSkipped, rtpPackets,
		} {
			if err := registry.Register(c); err != nil {
				enableErr = err
				return
			}
		}
		enabled.Store(true)
	})
	return enableErr
}

// IsMetricsEnabled reports whether Enable succeeded.
func IsMetricsEnabled() bool {
	return enabled.Load()
}

// Handler serves the registered collectors in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// RecordFrame counts one decoded frame.
func RecordFrame(config string, samples int) {
	framesDecoded.WithLabelValues(config).Inc()
	samplesDecoded.Add(float64(samples))
}

// RecordDroppedFrames counts frames discarded for reason.
func RecordDroppedFrames(reason string, n int) {
	if n > 0 {
		framesDropped.WithLabelValues(reason).Add(float64(n))
	}
}

// RecordSkippedBytes counts bytes skipped during resynchronization.
func RecordSkippedBytes(n int) {
	if n > 0 {
		bytesSkipped.Add(float64(n))
	}
}

// RecordRTPPackets counts RTP packets with the given outcome.
func RecordRTPPackets(outcome string, n uint64) {
	if n > 0 {
		rtpPackets.WithLabelValues(outcome).Add(float64(n))
	}
}
