package tournament_test

import (
	"testing"

	"github.com/Rogerxyz26/kingsturnier/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAutoNeedsTwoActivePlayers(t *testing.T) {
	st := tournament.NewState()
	p, _ := st.AddPlayer("Anna", 0)
	require.NoError(t, st.SetPlayerActive(p.ID, true))

	assert.ErrorIs(t, st.StartAuto(1000), tournament.ErrValidation)

	st2, _ := newStateWithPlayers(t, "Anna", "Ben")
	require.NoError(t, st2.StartAuto(1000))
	assert.Equal(t, tournament.PhaseLive, st2.Tournament.Phase)
	assert.EqualValues(t, 1000, st2.Tournament.StartedAt)
}

func TestStartAutoKeepsStartedAt(t *testing.T) {
	st, _ := newStateWithPlayers(t, "Anna", "Ben")
	require.NoError(t, st.StartAuto(1000))
	require.NoError(t, st.StartAuto(9000))

	// The first start wins; restarting does not rewrite history.
	assert.EqualValues(t, 1000, st.Tournament.StartedAt)
}

func TestSetTableCountPreservesInRangeMatches(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben", "Clara", "David")
	st.AutoFill()
	require.NotNil(t, st.Tournament.TableByID("table_2").Match)

	st.SetTableCount(2)
	require.Len(t, st.Tournament.Tables, 2)
	m := st.Tournament.TableByID("table_1").Match
	require.NotNil(t, m)
	assert.Equal(t, ids[0], m.AID)

	// Shrinking below an occupied table drops its match with it.
	st.SetTableCount(1)
	require.Len(t, st.Tournament.Tables, 1)
	assert.Nil(t, st.Tournament.TableByID("table_2"))
}

func TestSetTableCountClamps(t *testing.T) {
	st := tournament.NewState()

	st.SetTableCount(0)
	assert.Equal(t, tournament.MinTableCount, st.Tournament.TableCount)

	st.SetTableCount(99)
	assert.Equal(t, tournament.MaxTableCount, st.Tournament.TableCount)
	assert.Len(t, st.Tournament.Tables, tournament.MaxTableCount)
}

func TestResetTournamentKeepsPlayers(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben")
	require.NoError(t, st.StartAuto(1000))
	st.AutoFill()
	oldID := st.Tournament.ID

	st.ResetTournament()

	assert.NotEqual(t, oldID, st.Tournament.ID)
	assert.Equal(t, tournament.PhaseSetup, st.Tournament.Phase)
	assert.Empty(t, st.Tournament.Matches)
	// The registry survives, active flags included.
	require.NotNil(t, st.PlayerByID(ids[0]))
	assert.True(t, st.PlayerByID(ids[0]).Active)
}

func TestSetAsset(t *testing.T) {
	st := tournament.NewState()

	require.NoError(t, st.SetAsset("logo", []byte{0x89, 0x50}))
	assert.Equal(t, []byte{0x89, 0x50}, st.Assets["logo"])

	assert.ErrorIs(t, st.SetAsset("", []byte("x")), tournament.ErrValidation)
}

func TestSetTableEnabledUnknownTable(t *testing.T) {
	st := tournament.NewState()
	assert.ErrorIs(t, st.SetTableEnabled("table_9", true), tournament.ErrNotFound)
}
