package tournament_test

import (
	"testing"

	"github.com/Rogerxyz26/kingsturnier/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPlayerStartsInactive(t *testing.T) {
	st := tournament.NewState()

	p, err := st.AddPlayer("  Anna  ", 1234)
	require.NoError(t, err)
	assert.Equal(t, "Anna", p.Name)
	assert.False(t, p.Active)
	assert.EqualValues(t, 1234, p.CreatedAt)
	assert.NotEmpty(t, p.ID)
}

func TestAddPlayerRejectsDuplicatesCaseInsensitively(t *testing.T) {
	st := tournament.NewState()
	_, err := st.AddPlayer("Anna", 0)
	require.NoError(t, err)

	_, err = st.AddPlayer("ANNA", 0)
	assert.ErrorIs(t, err, tournament.ErrValidation)
	_, err = st.AddPlayer("  anna ", 0)
	assert.ErrorIs(t, err, tournament.ErrValidation)
	_, err = st.AddPlayer("", 0)
	assert.ErrorIs(t, err, tournament.ErrValidation)
}

func TestRenamePlayer(t *testing.T) {
	st := tournament.NewState()
	a, _ := st.AddPlayer("Anna", 0)
	_, err := st.AddPlayer("Ben", 0)
	require.NoError(t, err)

	require.NoError(t, st.RenamePlayer(a.ID, "Annika"))
	assert.Equal(t, "Annika", a.Name)

	// Renaming to an existing name collides, renaming to yourself does not.
	assert.ErrorIs(t, st.RenamePlayer(a.ID, "ben"), tournament.ErrValidation)
	assert.NoError(t, st.RenamePlayer(a.ID, "ANNIKA"))
	assert.ErrorIs(t, st.RenamePlayer("nope", "x"), tournament.ErrNotFound)
}

func TestRemovePlayerClearsEverything(t *testing.T) {
	st, ids := newStateWithPlayers(t, "Anna", "Ben")
	st.AutoFill()
	require.NotNil(t, st.Tournament.TableByID("table_1").Match)

	require.NoError(t, st.RemovePlayer(ids[0]))

	assert.Nil(t, st.PlayerByID(ids[0]))
	assert.Nil(t, st.Tournament.TableByID("table_1").Match)
	assert.NotContains(t, st.Tournament.Waitlist, ids[0])
	assert.NotContains(t, st.Tournament.StatsByID, ids[0])

	assert.ErrorIs(t, st.RemovePlayer(ids[0]), tournament.ErrNotFound)
}
