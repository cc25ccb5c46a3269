package http

import (
	"net/http"

	"github.com/Rogerxyz26/kingsturnier/internal/config"
	"github.com/Rogerxyz26/kingsturnier/internal/engine"
	"github.com/Rogerxyz26/kingsturnier/internal/metrics"
)

// Server routes operator requests into the tournament engine.
type Server struct {
	Engine         *engine.Engine
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}

type errorResponse struct {
	Error string `json:"error"`
}

type okResponse struct {
	OK bool `json:"ok"`
}
