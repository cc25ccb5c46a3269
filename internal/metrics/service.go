package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "king_matches_resolved_total",
			Help: "The total number of matches resolved with a winner.",
		}),
		MatchesCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "king_matches_cancelled_total",
			Help: "The total number of matches cancelled without a result.",
		}),
		TournamentsFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "king_tournaments_finalized_total",
			Help: "The total number of tournaments finalized into the archive.",
		}),
		MatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "king_match_duration_seconds",
			Help:    "The duration of resolved matches, from start to winner selection.",
			Buckets: []float64{30, 60, 120, 300, 600, 900, 1800, 3600},
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "king_notifications_sent_total",
			Help: "The total number of announcements successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "king_notifications_failed_total",
			Help: "The total number of announcements that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "king_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesResolved,
		s.MatchesCancelled,
		s.TournamentsFinalized,
		s.MatchDuration,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesResolved() {
	s.MatchesResolved.Inc()
}

func (s *Service) IncMatchesCancelled() {
	s.MatchesCancelled.Inc()
}

func (s *Service) IncTournamentsFinalized() {
	s.TournamentsFinalized.Inc()
}

func (s *Service) ObserveMatchDuration(seconds float64) {
	s.MatchDuration.Observe(seconds)
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
