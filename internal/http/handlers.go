package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Rogerxyz26/kingsturnier/internal/backup"
	"github.com/Rogerxyz26/kingsturnier/internal/tournament"
)

// writeJSON serializes v and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, tournament.ErrValidation), errors.Is(err, backup.ErrInvalidBackup):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, tournament.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, tournament.ErrNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeBody decodes a JSON request body into dst. A malformed body is a
// client error, reported as 400 by the caller.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) StateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Engine.Snapshot())
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Engine.Standings())
	}
}

func (s *Server) LifetimeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Engine.Lifetime())
	}
}

func (s *Server) ArchiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Engine.ArchiveEntries())
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Engine.Players())
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	type request struct {
		Name string `json:"name"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		player, err := s.Engine.AddPlayer(req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		log.Info("Player added", "playerID", player.ID, "name", player.Name)
		writeJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) PlayerProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := s.Engine.PlayerProfile(r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)
	}
}

func (s *Server) SetPlayerActiveHandler() http.HandlerFunc {
	type request struct {
		Active bool `json:"active"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if err := s.Engine.SetPlayerActive(r.PathValue("id"), req.Active); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) RenamePlayerHandler() http.HandlerFunc {
	type request struct {
		Name string `json:"name"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if err := s.Engine.RenamePlayer(r.PathValue("id"), req.Name); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Engine.DeletePlayer(r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) StartTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Engine.StartTournament(); err != nil {
			writeError(w, err)
			return
		}
		log.Info("Tournament started")
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) ResetTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Engine.ResetTournament()
		log.Info("Tournament reset")
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) FinalizeTournamentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := s.Engine.FinalizeTournament()
		if err != nil {
			writeError(w, err)
			return
		}
		log.Info("Tournament finalized", "archiveID", entry.ID, "championID", entry.ChampionID)
		writeJSON(w, http.StatusOK, entry)
	}
}

func (s *Server) RenameTournamentHandler() http.HandlerFunc {
	type request struct {
		Name string `json:"name"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.Engine.RenameTournament(req.Name)
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) SetTableCountHandler() http.HandlerFunc {
	type request struct {
		Count int `json:"count"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.Engine.SetTableCount(req.Count)
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) SetAutoFillHandler() http.HandlerFunc {
	type request struct {
		Enabled bool `json:"enabled"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.Engine.SetAutoFill(req.Enabled)
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) SetTableEnabledHandler() http.HandlerFunc {
	type request struct {
		Enabled bool `json:"enabled"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if err := s.Engine.SetTableEnabled(r.PathValue("id"), req.Enabled); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) StartMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Engine.StartMatch(r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) StopMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Engine.StopMatch(r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) ChooseWinnerHandler() http.HandlerFunc {
	type request struct {
		WinnerID string `json:"winnerId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		record, err := s.Engine.ChooseWinner(r.PathValue("id"), req.WinnerID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func (s *Server) CancelMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Engine.CancelMatch(r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) ReorderWaitlistHandler() http.HandlerFunc {
	type request struct {
		PlayerID string `json:"playerId"`
		Index    int    `json:"index"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if err := s.Engine.ReorderWaitlist(req.PlayerID, req.Index); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) SetArchiveIncludedHandler() http.HandlerFunc {
	type request struct {
		Included bool `json:"included"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if err := s.Engine.SetArchiveIncluded(r.PathValue("id"), req.Included); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) RenameArchiveEntryHandler() http.HandlerFunc {
	type request struct {
		Name string `json:"name"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if err := s.Engine.RenameArchiveEntry(r.PathValue("id"), req.Name); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) DeleteArchiveEntryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Engine.DeleteArchiveEntry(r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) ExportBackupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := backup.Export(s.Engine.ExportState(), time.Now())
		if err != nil {
			log.Error("Failed to export backup", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "export failed"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="kingsturnier-backup.json"`)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func (s *Server) ImportBackupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
			return
		}
		state, err := backup.Import(payload)
		if err != nil {
			writeError(w, err)
			return
		}
		s.Engine.ReplaceState(state)
		log.Info("Backup imported", "players", len(state.Players))
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}

func (s *Server) GetAssetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, ok := s.Engine.Asset(r.PathValue("key"))
		if !ok {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "asset not found"})
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func (s *Server) SetAssetHandler() http.HandlerFunc {
	type request struct {
		Data string `json:"data"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := decodeBody(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		if err := s.Engine.SetAsset(r.PathValue("key"), []byte(req.Data)); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse{OK: true})
	}
}
