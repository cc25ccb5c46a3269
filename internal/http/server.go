package http

import (
	"net/http"

	"github.com/Rogerxyz26/kingsturnier/internal/config"
	"github.com/Rogerxyz26/kingsturnier/internal/engine"
	"github.com/Rogerxyz26/kingsturnier/internal/metrics"
)

// NewServer wires the operator API.
func NewServer(eng *engine.Engine, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config) *Server {
	server := &Server{
		Engine:         eng,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), requestLogger))

	s.Router.Handle("GET /state", Chain(s.StateHandler(), requestLogger))
	s.Router.Handle("GET /standings", Chain(s.StandingsHandler(), requestLogger))
	s.Router.Handle("GET /lifetime", Chain(s.LifetimeHandler(), requestLogger))
	s.Router.Handle("GET /archive", Chain(s.ArchiveHandler(), requestLogger))

	s.Router.Handle("GET /players", Chain(s.ListPlayersHandler(), requestLogger))
	s.Router.Handle("POST /players", Chain(s.AddPlayerHandler(), requestLogger))
	s.Router.Handle("GET /players/{id}/profile", Chain(s.PlayerProfileHandler(), requestLogger))
	s.Router.Handle("POST /players/{id}/active", Chain(s.SetPlayerActiveHandler(), requestLogger))
	s.Router.Handle("POST /players/{id}/rename", Chain(s.RenamePlayerHandler(), requestLogger))
	s.Router.Handle("DELETE /players/{id}", Chain(s.DeletePlayerHandler(), requestLogger))

	s.Router.Handle("POST /tournament/start", Chain(s.StartTournamentHandler(), requestLogger))
	s.Router.Handle("POST /tournament/reset", Chain(s.ResetTournamentHandler(), requestLogger))
	s.Router.Handle("POST /tournament/finalize", Chain(s.FinalizeTournamentHandler(), requestLogger))
	s.Router.Handle("POST /tournament/rename", Chain(s.RenameTournamentHandler(), requestLogger))
	s.Router.Handle("POST /tournament/table-count", Chain(s.SetTableCountHandler(), requestLogger))
	s.Router.Handle("POST /tournament/autofill", Chain(s.SetAutoFillHandler(), requestLogger))

	s.Router.Handle("POST /tables/{id}/enabled", Chain(s.SetTableEnabledHandler(), requestLogger))
	s.Router.Handle("POST /tables/{id}/start", Chain(s.StartMatchHandler(), requestLogger))
	s.Router.Handle("POST /tables/{id}/stop", Chain(s.StopMatchHandler(), requestLogger))
	s.Router.Handle("POST /tables/{id}/winner", Chain(s.ChooseWinnerHandler(), requestLogger))
	s.Router.Handle("POST /tables/{id}/cancel", Chain(s.CancelMatchHandler(), requestLogger))

	s.Router.Handle("POST /waitlist/reorder", Chain(s.ReorderWaitlistHandler(), requestLogger))

	s.Router.Handle("POST /archive/{id}/include", Chain(s.SetArchiveIncludedHandler(), requestLogger))
	s.Router.Handle("POST /archive/{id}/rename", Chain(s.RenameArchiveEntryHandler(), requestLogger))
	s.Router.Handle("DELETE /archive/{id}", Chain(s.DeleteArchiveEntryHandler(), requestLogger))

	s.Router.Handle("GET /backup/export", Chain(s.ExportBackupHandler(), requestLogger))
	s.Router.Handle("POST /backup/import", Chain(s.ImportBackupHandler(), requestLogger))

	s.Router.Handle("GET /assets/{key}", Chain(s.GetAssetHandler(), requestLogger))
	s.Router.Handle("POST /assets/{key}", Chain(s.SetAssetHandler(), requestLogger))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
