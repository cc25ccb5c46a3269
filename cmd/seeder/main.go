package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/Rogerxyz26/kingsturnier/internal/database"
	"github.com/Rogerxyz26/kingsturnier/internal/engine"
	"github.com/Rogerxyz26/kingsturnier/internal/metrics"
	"github.com/Rogerxyz26/kingsturnier/internal/notifier"
	"github.com/Rogerxyz26/kingsturnier/internal/state"
)

// Simplified config loading for the script
func loadDBName() string {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	if name, ok := os.LookupEnv("DB_NAME"); ok {
		return name
	}
	return "kingsturnier-seed.db"
}

var seedNames = []string{
	"Martin", "Sabine", "Jürgen", "Anna", "Klaus",
	"Petra", "Holger", "Birgit", "Stefan", "Monika",
}

// seedPlayers registers the demo roster and activates everyone.
func seedPlayers(eng *engine.Engine) error {
	for _, name := range seedNames {
		player, err := eng.AddPlayer(name)
		if err != nil {
			log.Warn("Skipping player", "name", name, "error", err)
			continue
		}
		if err := eng.SetPlayerActive(player.ID, true); err != nil {
			return fmt.Errorf("failed to activate player %s: %w", name, err)
		}
	}
	return nil
}

// simulate plays whatever is seated through the full start, stop, winner
// cycle until numMatches are resolved or no pair is left to seat.
func simulate(eng *engine.Engine, numMatches int) (int, error) {
	resolved := 0
	for resolved < numMatches {
		snap := eng.Snapshot()
		progressed := false
		for _, table := range snap.Tournament.Tables {
			if table.Match == nil {
				continue
			}
			if err := eng.StartMatch(table.ID); err != nil {
				return resolved, fmt.Errorf("failed to start match on %s: %w", table.ID, err)
			}
			if err := eng.StopMatch(table.ID); err != nil {
				return resolved, fmt.Errorf("failed to stop match on %s: %w", table.ID, err)
			}
			winner := table.Match.AID
			if rand.Intn(2) == 1 {
				winner = table.Match.BID
			}
			if _, err := eng.ChooseWinner(table.ID, winner); err != nil {
				return resolved, fmt.Errorf("failed to resolve match on %s: %w", table.ID, err)
			}
			resolved++
			progressed = true
			if resolved == numMatches {
				break
			}
		}
		if !progressed {
			log.Warn("No seated matches left to simulate", "resolved", resolved)
			break
		}
	}
	return resolved, nil
}

func main() {
	log.Info("Starting database seeder...")
	dbName := loadDBName()

	db, err := database.InitDB(dbName, "", "")
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer db.Close()

	eng := engine.New(state.New(db), notifier.Noop{}, metrics.NewMock())

	startTime := time.Now()

	if err := seedPlayers(eng); err != nil {
		log.Fatalf("Failed to seed players: %s", err)
	}
	log.Info("Seeded players", "count", len(seedNames))

	if err := eng.StartTournament(); err != nil {
		log.Fatalf("Failed to start tournament: %s", err)
	}

	// Simulate a full evening on the seeded roster.
	resolved, err := simulate(eng, 40)
	if err != nil {
		log.Fatalf("Failed to simulate matches: %s", err)
	}
	log.Info("Simulated matches", "count", resolved)

	entry, err := eng.FinalizeTournament()
	if err != nil {
		log.Fatalf("Failed to finalize tournament: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Seeding complete", "archiveID", entry.ID, "championID", entry.ChampionID, "duration", duration)
}
