package tournament_test

import (
	"testing"

	"github.com/Rogerxyz26/kingsturnier/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playOut resolves one full idle→running→await_winner→resolved cycle on a
// table, with the given winner.
func playOut(t *testing.T, st *tournament.State, tableID, winnerID string, at int64) {
	t.Helper()
	require.NoError(t, st.StartMatch(tableID, at))
	require.NoError(t, st.StopMatch(tableID, at+1000))
	_, err := st.ChooseWinner(tableID, winnerID, at+2000)
	require.NoError(t, err)
}

func TestFinalizeArchivesTournament(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben", "Clara")
	require.NoError(t, st.StartAuto(1000))
	st.AutoFill()
	playOut(t, st, "table_1", ids[0], 2000)

	entry := st.Finalize(99_000)

	assert.Equal(t, st.Tournament.ID, entry.ID)
	assert.EqualValues(t, 99_000, entry.EndedAt)
	assert.Equal(t, 3, entry.ParticipantsCount)
	assert.Equal(t, ids[0], entry.ChampionID)
	assert.True(t, entry.IncludedInOverall)
	assert.Len(t, entry.Snapshot.Matches, 1)

	assert.Equal(t, tournament.PhaseFinished, st.Tournament.Phase)
	require.Len(t, st.Archive.Tournaments, 1)
	assert.Same(t, entry, st.Archive.Tournaments[0])
}

func TestFinalizeWithoutGamesHasNoChampion(t *testing.T) {
	st, _ := newStateWithPlayers(t, "Anna", "Ben")

	entry := st.Finalize(1000)
	assert.Empty(t, entry.ChampionID)
	assert.Equal(t, 2, entry.ParticipantsCount)
}

func TestRecomputeLifetimePoints(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben")
	st.AutoFill()
	playOut(t, st, "table_1", ids[0], 1000)
	st.AutoFill()
	playOut(t, st, "table_1", ids[0], 10_000)

	st.Finalize(20_000)

	// Two ranked rows: the winner earns 2 points, the loser 1.
	life := st.Archive.LifetimeByID
	require.NotNil(t, life[ids[0]])
	assert.Equal(t, 2, life[ids[0]].TotalTournamentPoints)
	assert.Equal(t, 2, life[ids[0]].Wins)
	assert.Equal(t, 1, life[ids[0]].TournamentsPlayed)
	require.NotNil(t, life[ids[1]])
	assert.Equal(t, 1, life[ids[1]].TotalTournamentPoints)
	assert.Equal(t, 2, life[ids[1]].Losses)
	assert.Equal(t, 1, life[ids[1]].TournamentsPlayed)
}

func TestExcludedEntriesLeaveLifetime(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben")
	st.AutoFill()
	playOut(t, st, "table_1", ids[0], 1000)
	entry := st.Finalize(2000)
	require.NotEmpty(t, st.Archive.LifetimeByID)

	require.NoError(t, st.SetArchiveIncluded(entry.ID, false))
	assert.Empty(t, st.Archive.LifetimeByID)

	require.NoError(t, st.SetArchiveIncluded(entry.ID, true))
	assert.NotEmpty(t, st.Archive.LifetimeByID)
}

func TestDeleteArchiveEntryRecomputes(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben")
	st.AutoFill()
	playOut(t, st, "table_1", ids[0], 1000)
	entry := st.Finalize(2000)

	require.NoError(t, st.DeleteArchiveEntry(entry.ID))
	assert.Empty(t, st.Archive.Tournaments)
	assert.Empty(t, st.Archive.LifetimeByID)

	assert.ErrorIs(t, st.DeleteArchiveEntry(entry.ID), tournament.ErrNotFound)
}

func TestRenameArchiveEntry(t *testing.T) {
	st, _ := newStateWithPlayers(t, "Anna", "Ben")
	entry := st.Finalize(1000)

	require.NoError(t, st.RenameArchiveEntry(entry.ID, "  Sommerfinale  "))
	assert.Equal(t, "Sommerfinale", entry.Name)

	assert.ErrorIs(t, st.RenameArchiveEntry(entry.ID, "   "), tournament.ErrValidation)
	assert.ErrorIs(t, st.RenameArchiveEntry("nope", "x"), tournament.ErrNotFound)
}

func TestTournamentPlayedOnlyCountsGames(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben", "Clara")
	// Clara gets a stats row but never plays.
	st.Tournament.EnsureStats(ids[2])
	st.AutoFill()
	playOut(t, st, "table_1", ids[0], 1000)

	st.Finalize(2000)

	life := st.Archive.LifetimeByID
	require.NotNil(t, life[ids[2]])
	assert.Equal(t, 0, life[ids[2]].TournamentsPlayed)
	// A zero-game row still earns placement points for its rank. Clara's
	// smoothed 50% lands between the winner and the loser, so rank 2 of 3.
	assert.Equal(t, 2, life[ids[2]].TotalTournamentPoints)
}
