// models/models.go
package models

import (
	"time"
)

// PlayerResult 一局结束时单个玩家的最终名次
type PlayerResult struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Rank        int    `json:"rank"`
	IsHost      bool   `json:"isHost"`
	IsSpectator bool   `json:"isSpectator"`
}

// GameRecord 归档用的完整对局记录。房间本身不持久化，
// 这里只追加已结束对局的结果。
type GameRecord struct {
	RoomID      string         `json:"room_id"`
	Categories  []string       `json:"categories"`
	TotalRounds int            `json:"total_rounds"`
	Results     []PlayerResult `json:"results"`
	FinishedAt  time.Time      `json:"finished_at"`
}

// LeaderboardEntry 按展示名聚合的战绩。没有账号体系，
// 同名即同人，只做尽力而为的统计。
type LeaderboardEntry struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Games  int    `json:"games"`
	Points int    `json:"points"`
}

// RoomSummary 运维查询用的房间概览
type RoomSummary struct {
	RoomID       string    `json:"room_id"`
	Status       string    `json:"status"`
	Players      int       `json:"players"`
	Spectators   int       `json:"spectators"`
	CurrentRound int       `json:"current_round"`
	TotalRounds  int       `json:"total_rounds"`
	CreatedAt    time.Time `json:"created_at"`
}
