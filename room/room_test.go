package room

import (
	"testing"

	"github.com/wfunc/wordparty/state"
)

func newTestPlayer(socketID string, isHost, isSpectator bool) *Player {
	return NewPlayer(socketID, "player-"+socketID, isHost, Avatar{Img: "img", Color: "#fff"}, isSpectator)
}

func TestManager_GetOrCreate(t *testing.T) {
	manager := NewRoomManager()

	r := manager.GetOrCreate("ABC", []string{"Naam", "Jagah"}, 3)
	if r == nil {
		t.Fatal("GetOrCreate should not return nil")
	}
	if r.RoomID != "ABC" {
		t.Errorf("Expected room ID ABC, got %s", r.RoomID)
	}
	if r.CurrentRound != 1 || r.TotalRounds != 3 || r.JudgingIndex != 0 {
		t.Errorf("Unexpected fresh room counters: round=%d total=%d judging=%d",
			r.CurrentRound, r.TotalRounds, r.JudgingIndex)
	}
	if !r.Status.Is(state.StatusWaiting) {
		t.Errorf("Fresh room should be waiting, got %s", r.Status.Current())
	}
	if len(r.AvailableAvatars) != MasterDeckSize() {
		t.Errorf("Fresh room should hold a full avatar pool, got %d", len(r.AvailableAvatars))
	}
}

func TestManager_GetOrCreate_Idempotent(t *testing.T) {
	manager := NewRoomManager()

	first := manager.GetOrCreate("ABC", []string{"Naam"}, 3)
	second := manager.GetOrCreate("ABC", []string{"Other", "Things"}, 9)

	if first != second {
		t.Fatal("GetOrCreate should return the same room instance for the same ID")
	}
	// 已存在时设置参数被忽略
	if second.TotalRounds != 3 {
		t.Errorf("Settings of an existing room must not change, got totalRounds=%d", second.TotalRounds)
	}
	if len(second.Categories) != 1 || second.Categories[0] != "Naam" {
		t.Errorf("Categories of an existing room must not change, got %v", second.Categories)
	}
}

func TestManager_Remove(t *testing.T) {
	manager := NewRoomManager()
	manager.GetOrCreate("ABC", nil, 1)

	manager.Remove("ABC")
	if _, exists := manager.Get("ABC"); exists {
		t.Error("Get should not find a removed room")
	}
	if manager.Count() != 0 {
		t.Errorf("Expected 0 rooms, got %d", manager.Count())
	}
}

func TestManager_FindByPlayer(t *testing.T) {
	manager := NewRoomManager()
	r := manager.GetOrCreate("ABC", nil, 1)
	manager.GetOrCreate("XYZ", nil, 1)

	r.Lock()
	r.AddPlayer(newTestPlayer("conn-1", true, false))
	r.Unlock()

	found, exists := manager.FindByPlayer("conn-1")
	if !exists {
		t.Fatal("FindByPlayer should locate the room containing the player")
	}
	if found.RoomID != "ABC" {
		t.Errorf("Expected room ABC, got %s", found.RoomID)
	}

	if _, exists := manager.FindByPlayer("conn-unknown"); exists {
		t.Error("FindByPlayer should report false for unknown connection ids")
	}
}

func TestRoom_AddRemovePlayer_PreservesOrder(t *testing.T) {
	r := NewRoom("ABC", nil, 1)

	r.AddPlayer(newTestPlayer("a", true, false))
	r.AddPlayer(newTestPlayer("b", false, false))
	r.AddPlayer(newTestPlayer("c", false, false))

	removed, ok := r.RemovePlayer("b")
	if !ok || removed.SocketID != "b" {
		t.Fatalf("RemovePlayer returned %v, %v", removed, ok)
	}
	if len(r.Players) != 2 || r.Players[0].SocketID != "a" || r.Players[1].SocketID != "c" {
		t.Errorf("Join order must survive removal, got %v", r.Players)
	}

	if _, ok := r.RemovePlayer("nope"); ok {
		t.Error("RemovePlayer should report false for unknown connection ids")
	}
}

func TestRoom_Participants_ExcludesSpectators(t *testing.T) {
	r := NewRoom("ABC", nil, 1)
	r.AddPlayer(newTestPlayer("a", true, false))
	r.AddPlayer(newTestPlayer("b", false, true))
	r.AddPlayer(newTestPlayer("c", false, false))

	participants := r.Participants()
	if len(participants) != 2 {
		t.Fatalf("Expected 2 participants, got %d", len(participants))
	}
	if participants[0].SocketID != "a" || participants[1].SocketID != "c" {
		t.Errorf("Participants must keep roster order, got %v", participants)
	}
}

func TestRoom_AllSubmitted(t *testing.T) {
	r := NewRoom("ABC", nil, 1)

	// 空参与者列表视为已全部提交
	if !r.AllSubmitted() {
		t.Error("AllSubmitted should be true for an empty roster")
	}

	a := newTestPlayer("a", true, false)
	b := newTestPlayer("b", false, false)
	spectator := newTestPlayer("s", false, true)
	r.AddPlayer(a)
	r.AddPlayer(b)
	r.AddPlayer(spectator)

	a.HasSubmitted = true
	if r.AllSubmitted() {
		t.Error("One late submitter must keep AllSubmitted false")
	}

	// 旁观者不参与完整性检查
	b.HasSubmitted = true
	if !r.AllSubmitted() {
		t.Error("AllSubmitted should ignore spectators")
	}
}

func TestPlayer_Resets(t *testing.T) {
	p := newTestPlayer("a", false, true)
	p.Score = 7
	p.IsReady = true
	p.HasSubmitted = true
	p.Answers["Naam"] = "Meena"

	p.ResetRound()
	if len(p.Answers) != 0 || p.HasSubmitted || p.IsReady {
		t.Error("ResetRound must clear round-scoped fields")
	}
	if p.Score != 7 || !p.IsSpectator {
		t.Error("ResetRound must not touch score or spectator status")
	}

	p.ResetGame()
	if p.Score != 0 || p.IsSpectator {
		t.Error("ResetGame must clear score and spectator status")
	}
}
