package services

import (
	"testing"
	"time"

	"github.com/wfunc/wordparty/models"
	"github.com/wfunc/wordparty/room"
)

// fakeStore hands saved records back over a channel so the test can wait
// for the asynchronous write.
type fakeStore struct {
	saved   chan *models.GameRecord
	entries []models.LeaderboardEntry
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(chan *models.GameRecord, 1)}
}

func (f *fakeStore) SaveGameRecord(record *models.GameRecord) error {
	f.saved <- record
	return nil
}

func (f *fakeStore) Leaderboard(limit int) ([]models.LeaderboardEntry, error) {
	if limit < len(f.entries) {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func (f *fakeStore) Close() error { return nil }

func TestGameFinished_BuildsRankedRecord(t *testing.T) {
	store := newFakeStore()
	svc := NewArchiveService(store)

	ranked := []*room.Player{
		{SocketID: "b", Name: "Omar", Score: 10},
		{SocketID: "a", Name: "Hina", Score: 3, IsHost: true},
		{SocketID: "s", Name: "Late", IsSpectator: true},
	}
	svc.GameFinished("ABC", []string{"Naam", "Jagah"}, 2, ranked)

	var record *models.GameRecord
	select {
	case record = <-store.saved:
	case <-time.After(2 * time.Second):
		t.Fatal("SaveGameRecord was never called")
	}

	if record.RoomID != "ABC" || record.TotalRounds != 2 {
		t.Errorf("Unexpected record header: %+v", record)
	}
	if len(record.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(record.Results))
	}
	if record.Results[0].Name != "Omar" || record.Results[0].Rank != 1 {
		t.Errorf("Rank 1 should be Omar, got %+v", record.Results[0])
	}
	if record.Results[1].Rank != 2 || !record.Results[1].IsHost {
		t.Errorf("Rank 2 should be the host, got %+v", record.Results[1])
	}
	if !record.Results[2].IsSpectator {
		t.Error("Spectator flag must survive into the record")
	}
	if record.FinishedAt.IsZero() {
		t.Error("FinishedAt must be set")
	}
}

func TestLeaderboard_DefaultLimit(t *testing.T) {
	store := newFakeStore()
	store.entries = []models.LeaderboardEntry{{Name: "Omar", Wins: 2}}
	svc := NewArchiveService(store)

	entries, err := svc.Leaderboard(0)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Omar" {
		t.Errorf("Unexpected entries: %v", entries)
	}
}
