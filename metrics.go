package newsdesk

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	articlesCreated prometheus.Counter
	commentsCreated prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "newsdesk",
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests handled, by handler and status code.",
		}, []string{"handler", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "newsdesk",
			Name:      "http_request_duration_seconds",
			Help:      "Time spent handling HTTP requests, by handler.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"handler"}),
		articlesCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "newsdesk",
			Name:      "articles_created_total",
			Help:      "Number of articles created.",
		}),
		commentsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "newsdesk",
			Name:      "comments_created_total",
			Help:      "Number of comments created.",
		}),
	}
}

// instrument counts and times the requests served by handle under the given name.
func (s *Server) instrument(name string, handle httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		start := time.Now()
		rec := newStatusRecorder(w)

		handle(rec, r, p)

		s.metrics.duration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		s.metrics.requests.WithLabelValues(name, strconv.Itoa(rec.status)).Inc()
	}
}
