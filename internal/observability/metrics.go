package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/danmuck/id3ctl/internal/id3"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	decodeTags = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "id3ctl",
			Subsystem: "decode",
			Name:      "tags_total",
			Help:      "Tags decoded, by result.",
		},
		[]string{"result"},
	)
	decodeFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "id3ctl",
			Subsystem: "decode",
			Name:      "frames_total",
			Help:      "Frames decoded, by payload kind.",
		},
		[]string{"kind"},
	)
	decodeSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "id3ctl",
			Subsystem: "decode",
			Name:      "frames_skipped_total",
			Help:      "Frames skipped for unsupported features.",
		},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "id3ctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "id3ctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(decodeTags, decodeFrames, decodeSkipped, httpRequests, httpDuration)
	})
}

// RecordDecode counts the outcome of one Decoder.Decode call.
func RecordDecode(tag *id3.Tag, err error) {
	RegisterMetrics()
	if err != nil {
		decodeTags.WithLabelValues(id3.Classify(err).String()).Inc()
		return
	}
	decodeTags.WithLabelValues("ok").Inc()
	for kind, n := range tag.KindCounts() {
		decodeFrames.WithLabelValues(kind.String()).Add(float64(n))
	}
	decodeSkipped.Add(float64(len(tag.Skipped)))
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// WriteTextfile dumps the default registry in the node-exporter textfile
// format.
func WriteTextfile(path string) error {
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
