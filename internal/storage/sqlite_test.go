package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, gameID string, score int) string {
	t.Helper()
	id, err := store.SaveRound(Round{GameID: gameID, Score: score, EndReason: "timeout"})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	round := Round{
		GameID:     "mathlab",
		Score:      8,
		FirstTry:   8,
		Correct:    10,
		Attempts:   12,
		Total:      10,
		BestStreak: 5,
		EndReason:  "completed",
		Duration:   95,
	}
	id, err := store.SaveRound(round)
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("round id %q is not a UUID: %v", id, err)
	}

	got, err := store.RoundByID(id)
	if err != nil || got == nil {
		t.Fatalf("RoundByID() = %v, %v", got, err)
	}
	round.ID, round.RoundID, round.CreatedAt = got.ID, id, got.CreatedAt
	if *got != round {
		t.Errorf("round = %+v, expected %+v", *got, round)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at was not set")
	}

	missing, err := store.RoundByID("nope")
	if err != nil || missing != nil {
		t.Errorf("RoundByID(nope) = %v, %v", missing, err)
	}
}

func TestStoreRejectsRoundWithoutGame(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRound(Round{Score: 1}); err == nil {
		t.Error("expected error for empty game id")
	}
}

func TestStoreKeepsGivenRoundID(t *testing.T) {
	store := openTestStore(t)
	want := uuid.NewString()

	got, err := store.SaveRound(Round{RoundID: want, GameID: "blitz", EndReason: "timeout"})
	if err != nil || got != want {
		t.Fatalf("SaveRound() = %q, %v", got, err)
	}
	if _, err := store.SaveRound(Round{RoundID: want, GameID: "blitz", EndReason: "timeout"}); err == nil {
		t.Error("duplicate round id should be rejected")
	}
}

func TestStoreTopRounds(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "blitz", 100)
	save(t, store, "blitz", 50)
	save(t, store, "blitz", 200)
	save(t, store, "streak", 500)

	rounds, err := store.TopRounds("blitz", 10)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(rounds))
	}
	if rounds[0].Score != 200 || rounds[1].Score != 100 || rounds[2].Score != 50 {
		t.Errorf("Rounds not in expected order: %v", rounds)
	}

	streak, err := store.TopRounds("streak", 10)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(streak) != 1 {
		t.Errorf("Expected 1 streak round, got %d", len(streak))
	}
}

func TestStoreTopRoundsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, "test", (i+1)*100)
	}

	rounds, err := store.TopRounds("test", 3)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("Expected 3 rounds with limit, got %d", len(rounds))
	}
	if rounds[0].Score != 500 || rounds[1].Score != 400 || rounds[2].Score != 300 {
		t.Errorf("Rounds not in expected order: %v", rounds)
	}
}

func TestStoreTopRoundsTieGoesToEarlier(t *testing.T) {
	store := openTestStore(t)

	first := save(t, store, "blitz", 40)
	save(t, store, "blitz", 40)

	rounds, err := store.TopRounds("blitz", 1)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if rounds[0].RoundID != first {
		t.Errorf("tie went to %s, expected %s", rounds[0].RoundID, first)
	}
}

func TestStoreRecentRounds(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "blitz", 10)
	save(t, store, "streak", 20)
	last := save(t, store, "mathlab", 5)

	rounds, err := store.RecentRounds(2)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 2 || rounds[0].RoundID != last {
		t.Errorf("RecentRounds() = %v", rounds)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blitz")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, "blitz", 100)
	save(t, store, "blitz", 300)
	save(t, store, "blitz", 200)

	high, err = store.HighScore("blitz")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearRounds(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "blitz", 100)
	save(t, store, "blitz", 200)
	save(t, store, "streak", 300)

	if err := store.ClearRounds("blitz"); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}

	blitz, _ := store.TopRounds("blitz", 10)
	if len(blitz) != 0 {
		t.Errorf("Expected 0 blitz rounds after clear, got %d", len(blitz))
	}

	streak, _ := store.TopRounds("streak", 10)
	if len(streak) != 1 {
		t.Errorf("Streak rounds should not be affected by clearing blitz")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRound(Round{GameID: "blitz", Score: 40, Correct: 4, Attempts: 5, BestStreak: 3, EndReason: "timeout"})
	store.SaveRound(Round{GameID: "blitz", Score: 80, Correct: 8, Attempts: 11, BestStreak: 6, EndReason: "timeout"})
	store.SaveRound(Round{GameID: "streak", Score: 30, Correct: 3, Attempts: 4, BestStreak: 3, EndReason: "wrong_answer"})

	st, err := store.GetGameStats("blitz")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if st.GamesCount != 2 || st.HighScore != 80 || st.AvgScore != 60 || st.BestStreak != 6 {
		t.Errorf("stats = %+v", st)
	}
	if st.Accuracy != 12.0/16.0 {
		t.Errorf("Accuracy = %v, expected 0.75", st.Accuracy)
	}

	empty, err := store.GetGameStats("mathlab")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.GameID != "mathlab" {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["streak"].HighScore != 30 {
		t.Errorf("all stats = %v", all)
	}
}

func TestRoundAccuracy(t *testing.T) {
	if got := (Round{}).Accuracy(); got != 0 {
		t.Errorf("Accuracy() with no attempts = %v", got)
	}
	if got := (Round{Correct: 3, Attempts: 4}).Accuracy(); got != 0.75 {
		t.Errorf("Accuracy() = %v, expected 0.75", got)
	}
}
