// persistence/interface.go
package persistence

import (
	"fmt"

	"github.com/wfunc/wordparty/models"
)

// Store 已结束对局的归档存储。实现必须保证 SaveGameRecord 内部的
// 记录写入和排行榜更新是原子的。
type Store interface {
	SaveGameRecord(record *models.GameRecord) error
	Leaderboard(limit int) ([]models.LeaderboardEntry, error)
	Close() error
}

// 错误定义
var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)
