package services

import (
	"time"

	"github.com/wfunc/wordparty/logger"
	"github.com/wfunc/wordparty/models"
	"github.com/wfunc/wordparty/persistence"
	"github.com/wfunc/wordparty/room"
)

// ArchiveService 把打完的对局写进归档存储。写库在独立 goroutine 里做，
// 绝不让数据库拖住持有房间锁的事件处理。
type ArchiveService struct {
	store persistence.Store
}

func NewArchiveService(store persistence.Store) *ArchiveService {
	return &ArchiveService{store: store}
}

// GameFinished 实现 game.Archiver。ranked 已按最终名次排好。
func (s *ArchiveService) GameFinished(roomID string, categories []string, totalRounds int, ranked []*room.Player) {
	// 房间数据在锁内拷贝成记录，落库异步进行
	record := &models.GameRecord{
		RoomID:      roomID,
		Categories:  append([]string(nil), categories...),
		TotalRounds: totalRounds,
		Results:     make([]models.PlayerResult, 0, len(ranked)),
		FinishedAt:  time.Now(),
	}
	for i, p := range ranked {
		record.Results = append(record.Results, models.PlayerResult{
			Name:        p.Name,
			Score:       p.Score,
			Rank:        i + 1,
			IsHost:      p.IsHost,
			IsSpectator: p.IsSpectator,
		})
	}

	go func() {
		if err := s.store.SaveGameRecord(record); err != nil {
			logger.Log.Errorf("failed to archive game for room %s: %v", roomID, err)
		}
	}()
}

// Leaderboard 供运维接口查询战绩
func (s *ArchiveService) Leaderboard(limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.Leaderboard(limit)
}
