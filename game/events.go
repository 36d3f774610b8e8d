package game

import "github.com/wfunc/wordparty/room"

// 入站事件载荷。字段名沿用客户端契约。

type JoinRoomRequest struct {
	RoomID      string   `json:"roomID"`
	Name        string   `json:"name"`
	IsHost      bool     `json:"isHost"`
	Categories  []string `json:"categories,omitempty"`
	TotalRounds int      `json:"totalRounds,omitempty"`
}

// RoomRequest 只带房间号的事件：requestReplay / toggleReady /
// triggerPanic / nextJudgedPlayer
type RoomRequest struct {
	RoomID string `json:"roomID"`
}

type UpdateSettingsRequest struct {
	RoomID      string   `json:"roomID"`
	Categories  []string `json:"categories"`
	TotalRounds int      `json:"totalRounds"`
}

type HostStartedGameRequest struct {
	RoomID string `json:"roomID"`
	Letter string `json:"letter"`
	Timer  int    `json:"timer"`
}

type SubmitAnswersRequest struct {
	RoomID  string            `json:"roomID"`
	Answers map[string]string `json:"answers"`
}

type LockScoreRequest struct {
	RoomID   string `json:"roomID"`
	JudgedID string `json:"judgedId"`
	Points   int    `json:"points"`
}

// 出站事件载荷

type StartVotingEvent struct {
	JudgedPlayer *room.Player `json:"judgedPlayer"`
	JudgeID      string       `json:"judgeId"`
	Categories   []string     `json:"categories"`
}

type GameStartedEvent struct {
	Letter     string   `json:"letter"`
	Categories []string `json:"categories"`
	Timer      int      `json:"timer"`
}

type RoundOverEvent struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}
