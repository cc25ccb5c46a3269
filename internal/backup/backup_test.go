package backup_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Rogerxyz26/kingsturnier/internal/backup"
	"github.com/Rogerxyz26/kingsturnier/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundtrip(t *testing.T) {
	st := tournament.NewState()
	p, err := st.AddPlayer("Anna", 1234)
	require.NoError(t, err)
	require.NoError(t, st.SetPlayerActive(p.ID, true))
	st.Tournament.EnsureStats(p.ID).Wins = 2
	st.Tournament.StatsByID[p.ID].Games = 2

	data, err := backup.Export(st, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var env backup.Envelope
	require.NoError(t, json.Unmarshal(data, &env))
	assert.Equal(t, backup.FormatVersion, env.Version)
	assert.Equal(t, 2025, env.CreatedAt.Year())

	imported, err := backup.Import(data)
	require.NoError(t, err)
	require.Len(t, imported.Players, 1)
	assert.Equal(t, "Anna", imported.Players[0].Name)
	assert.Equal(t, 2, imported.Tournament.StatsByID[p.ID].Wins)
	// Shape repair ran on the way in.
	assert.Len(t, imported.Tournament.Tables, imported.Tournament.TableCount)
}

func TestImportRejectsGarbage(t *testing.T) {
	_, err := backup.Import([]byte("not json at all"))
	assert.ErrorIs(t, err, backup.ErrInvalidBackup)
}

func TestImportRejectsUnknownFields(t *testing.T) {
	_, err := backup.Import([]byte(`{"version":1,"surprise":true,"state":{}}`))
	assert.ErrorIs(t, err, backup.ErrInvalidBackup)
}

func TestImportRejectsWrongVersion(t *testing.T) {
	_, err := backup.Import([]byte(`{"version":2,"state":{}}`))
	assert.ErrorIs(t, err, backup.ErrInvalidBackup)
}

func TestImportRejectsMissingState(t *testing.T) {
	_, err := backup.Import([]byte(`{"version":1}`))
	assert.ErrorIs(t, err, backup.ErrInvalidBackup)
}

func TestImportRejectsBrokenInvariants(t *testing.T) {
	mk := func(mutate func(*tournament.State)) []byte {
		st := tournament.NewState()
		_, err := st.AddPlayer("Anna", 1)
		require.NoError(t, err)
		mutate(st)
		data, err := backup.Export(st, time.Now())
		require.NoError(t, err)
		return data
	}

	data := mk(func(st *tournament.State) {
		st.Players[0].ID = ""
	})
	_, err := backup.Import(data)
	assert.ErrorIs(t, err, backup.ErrInvalidBackup)

	data = mk(func(st *tournament.State) {
		st.Players = append(st.Players, &tournament.Player{ID: st.Players[0].ID, Name: "Double"})
	})
	_, err = backup.Import(data)
	assert.ErrorIs(t, err, backup.ErrInvalidBackup)

	data = mk(func(st *tournament.State) {
		st.Tournament.StatsByID["x"] = &tournament.Stats{Wins: 3, Losses: 1, Games: 2}
	})
	_, err = backup.Import(data)
	assert.ErrorIs(t, err, backup.ErrInvalidBackup)
}
