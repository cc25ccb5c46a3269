package tournament

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Volume weighting: every player starts from a virtual 2-2 record, so the
// smoothed score of a low-sample player is pulled toward 50% and a single
// lucky win cannot outrank a long consistent run.
const (
	PriorWins  = 2
	PriorGames = 4
)

// Row is one line of the current-tournament standings. Quote is the literal
// win rate, Score the smoothed rate used for ordering.
type Row struct {
	PlayerID string  `json:"playerId"`
	Name     string  `json:"name"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Games    int     `json:"games"`
	Quote    float64 `json:"quote"`
	Score    float64 `json:"score"`
}

// Names sort with German collation rules, matching the venue's locale.
var nameCollator = collate.New(language.German)

// RankStats converts per-player counters into sorted standings rows.
// Order: score desc, quote desc, wins desc, name asc (collated). The four
// comparators form a total order over distinct rows.
func RankStats(statsByID map[string]*Stats, nameOf func(string) string) []Row {
	rows := make([]Row, 0, len(statsByID))
	for id, st := range statsByID {
		wins, losses := st.Wins, st.Losses
		games := st.Games
		if games == 0 {
			games = wins + losses
		}
		quote := 0.0
		if games > 0 {
			quote = float64(wins) / float64(games)
		}
		score := float64(wins+PriorWins) / float64(games+PriorGames)
		rows = append(rows, Row{
			PlayerID: id,
			Name:     nameOf(id),
			Wins:     wins,
			Losses:   losses,
			Games:    games,
			Quote:    quote,
			Score:    score,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Quote != b.Quote {
			return a.Quote > b.Quote
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return nameCollator.CompareString(a.Name, b.Name) < 0
	})
	return rows
}

// Standings ranks the current tournament's stats.
func (s *State) Standings() []Row {
	return RankStats(s.Tournament.StatsByID, s.PlayerName)
}

// LifetimeRow is one line of the cross-tournament standings.
type LifetimeRow struct {
	PlayerID          string  `json:"playerId"`
	Name              string  `json:"name"`
	Points            int     `json:"points"`
	TournamentsPlayed int     `json:"tournamentsPlayed"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	Games             int     `json:"games"`
	Quote             float64 `json:"quote"`
}

// LifetimeStandings orders the lifetime cache: points desc, tournaments
// played desc, lifetime quote desc.
func (s *State) LifetimeStandings() []LifetimeRow {
	rows := make([]LifetimeRow, 0, len(s.Archive.LifetimeByID))
	for id, ls := range s.Archive.LifetimeByID {
		games := ls.Games
		if games == 0 {
			games = ls.Wins + ls.Losses
		}
		quote := 0.0
		if games > 0 {
			quote = float64(ls.Wins) / float64(games)
		}
		rows = append(rows, LifetimeRow{
			PlayerID:          id,
			Name:              s.PlayerName(id),
			Points:            ls.TotalTournamentPoints,
			TournamentsPlayed: ls.TournamentsPlayed,
			Wins:              ls.Wins,
			Losses:            ls.Losses,
			Games:             games,
			Quote:             quote,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.TournamentsPlayed != b.TournamentsPlayed {
			return a.TournamentsPlayed > b.TournamentsPlayed
		}
		return a.Quote > b.Quote
	})
	return rows
}
