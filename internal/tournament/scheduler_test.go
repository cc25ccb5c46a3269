package tournament_test

import (
	"testing"

	"github.com/Rogerxyz26/kingsturnier/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoFillSeatsPairsInTableOrder(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben", "Clara", "David", "Emil")

	st.AutoFill()

	t1 := st.Tournament.TableByID("table_1")
	require.NotNil(t, t1.Match)
	assert.Equal(t, ids[0], t1.Match.AID)
	assert.Equal(t, ids[1], t1.Match.BID)
	assert.Equal(t, tournament.StatusIdle, t1.Match.Status)

	t2 := st.Tournament.TableByID("table_2")
	require.NotNil(t, t2.Match)
	assert.Equal(t, ids[2], t2.Match.AID)
	assert.Equal(t, ids[3], t2.Match.BID)

	// Emil has no partner and stays queued; tables 3 and 4 stay free.
	assert.Equal(t, []string{ids[4]}, st.Tournament.Waitlist)
	assert.Nil(t, st.Tournament.TableByID("table_3").Match)
	assert.Nil(t, st.Tournament.TableByID("table_4").Match)
}

func TestAutoFillSkipsDisabledTables(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben")
	require.NoError(t, st.SetTableEnabled("table_1", false))

	st.AutoFill()

	assert.Nil(t, st.Tournament.TableByID("table_1").Match)
	m := st.Tournament.TableByID("table_2").Match
	require.NotNil(t, m)
	assert.Equal(t, ids[0], m.AID)
}

func TestAutoFillDisabledIsNoOp(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben")
	st.Tournament.AutoFill = false

	st.AutoFill()

	assert.Nil(t, st.Tournament.TableByID("table_1").Match)
	st.SyncWaitlist()
	assert.Equal(t, ids, st.Tournament.Waitlist)
}

func TestMatchLifecycle(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben")
	st.AutoFill()

	require.NoError(t, st.StartMatch("table_1", 10_000))
	m := st.Tournament.TableByID("table_1").Match
	assert.Equal(t, tournament.StatusRunning, m.Status)
	assert.EqualValues(t, 10_000, m.StartAt)

	require.NoError(t, st.StopMatch("table_1", 40_000))
	assert.Equal(t, tournament.StatusAwaitWinner, m.Status)

	rec, err := st.ChooseWinner("table_1", ids[1], 70_000)
	require.NoError(t, err)
	assert.Equal(t, ids[1], rec.WinnerID)
	// The clock runs from start until the winner is chosen, not until stop.
	assert.EqualValues(t, 60_000, rec.DurationMs)

	assert.Nil(t, st.Tournament.TableByID("table_1").Match)
	assert.Equal(t, &tournament.Stats{Wins: 1, Games: 1}, st.Tournament.StatsByID[ids[1]])
	assert.Equal(t, &tournament.Stats{Losses: 1, Games: 1}, st.Tournament.StatsByID[ids[0]])
	require.Len(t, st.Tournament.Matches, 1)
	assert.Equal(t, rec.ID, st.Tournament.Matches[0].ID)

	// Both rejoin the back of the waitlist.
	assert.Equal(t, []string{ids[1], ids[0]}, st.Tournament.Waitlist)
}

func TestInvalidTransitionsAreRejected(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben")
	st.AutoFill()

	// Cannot stop or resolve an idle match.
	assert.ErrorIs(t, st.StopMatch("table_1", 1000), tournament.ErrInvalidTransition)
	_, err := st.ChooseWinner("table_1", ids[0], 1000)
	assert.ErrorIs(t, err, tournament.ErrInvalidTransition)

	require.NoError(t, st.StartMatch("table_1", 1000))
	// Cannot start twice.
	assert.ErrorIs(t, st.StartMatch("table_1", 2000), tournament.ErrInvalidTransition)

	// Empty tables reject everything.
	assert.ErrorIs(t, st.StartMatch("table_2", 1000), tournament.ErrInvalidTransition)
	// Unknown tables are a different failure.
	assert.ErrorIs(t, st.StartMatch("table_99", 1000), tournament.ErrNotFound)
}

func TestChooseWinnerRequiresSeatedPlayer(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben", "Clara")
	st.AutoFill()
	require.NoError(t, st.StartMatch("table_1", 1000))
	require.NoError(t, st.StopMatch("table_1", 2000))

	_, err := st.ChooseWinner("table_1", ids[2], 3000)
	assert.ErrorIs(t, err, tournament.ErrValidation)
}

func TestChooseWinnerWithoutStartHasZeroDuration(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben")
	st.AutoFill()
	require.NoError(t, st.StartMatch("table_1", 0))
	require.NoError(t, st.StopMatch("table_1", 5000))

	rec, err := st.ChooseWinner("table_1", ids[0], 9000)
	require.NoError(t, err)
	assert.EqualValues(t, 0, rec.DurationMs)
}

func TestCancelMatchKeepsStatsAndHistory(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben")
	st.AutoFill()
	require.NoError(t, st.StartMatch("table_1", 1000))

	require.NoError(t, st.CancelMatch("table_1"))

	assert.Nil(t, st.Tournament.TableByID("table_1").Match)
	assert.Empty(t, st.Tournament.Matches)
	assert.Equal(t, &tournament.Stats{}, st.Tournament.StatsByID[ids[0]])
	assert.Equal(t, []string{ids[0], ids[1]}, st.Tournament.Waitlist)

	assert.ErrorIs(t, st.CancelMatch("table_1"), tournament.ErrInvalidTransition)
}

func TestDeactivatingSeatedPlayerClearsTable(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben", "Clara")
	st.AutoFill()
	require.NotNil(t, st.Tournament.TableByID("table_1").Match)

	require.NoError(t, st.SetPlayerActive(ids[0], false))

	assert.Nil(t, st.Tournament.TableByID("table_1").Match)
	st.SyncWaitlist()
	// Ben gets picked back up by the sync; Anna is gone.
	assert.Contains(t, st.Tournament.Waitlist, ids[1])
	assert.NotContains(t, st.Tournament.Waitlist, ids[0])
}
