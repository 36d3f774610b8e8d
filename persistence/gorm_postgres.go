// persistence/gorm_postgres.go
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wfunc/wordparty/models"
)

// GormPostgres 使用GORM的实现
type GormPostgres struct {
	db *gorm.DB
}

// GameRecordModel 对局记录表
type GameRecordModel struct {
	ID          uint   `gorm:"primaryKey"`
	RoomID      string `gorm:"index;not null"`
	Categories  string `gorm:"type:jsonb;not null"`
	TotalRounds int    `gorm:"not null"`
	Results     string `gorm:"type:jsonb;not null"`
	FinishedAt  time.Time
	CreatedAt   time.Time
}

// LeaderboardModel 排行榜表
type LeaderboardModel struct {
	Name      string `gorm:"primaryKey"`
	Wins      int    `gorm:"default:0"`
	Games     int    `gorm:"default:0"`
	Points    int    `gorm:"default:0"`
	UpdatedAt time.Time
}

// NewGormPostgres 创建GORM PostgreSQL连接
func NewGormPostgres(host string, port int, user, password, dbname string) (*GormPostgres, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	// 配置GORM日志
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 连接池
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&GameRecordModel{}, &LeaderboardModel{}); err != nil {
		return nil, err
	}

	return &GormPostgres{db: db}, nil
}

// SaveGameRecord 事务内写入对局记录并更新排行榜
func (g *GormPostgres) SaveGameRecord(record *models.GameRecord) error {
	categories, err := json.Marshal(record.Categories)
	if err != nil {
		return err
	}
	results, err := json.Marshal(record.Results)
	if err != nil {
		return err
	}

	return g.db.Transaction(func(tx *gorm.DB) error {
		row := GameRecordModel{
			RoomID:      record.RoomID,
			Categories:  string(categories),
			TotalRounds: record.TotalRounds,
			Results:     string(results),
			FinishedAt:  record.FinishedAt,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		for _, result := range record.Results {
			if result.IsSpectator {
				continue
			}
			won := 0
			if result.Rank == 1 {
				won = 1
			}

			var entry LeaderboardModel
			err := tx.Where("name = ?", result.Name).First(&entry).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				entry = LeaderboardModel{
					Name:   result.Name,
					Wins:   won,
					Games:  1,
					Points: result.Score,
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			case err != nil:
				return err
			default:
				updates := map[string]interface{}{
					"wins":   gorm.Expr("wins + ?", won),
					"games":  gorm.Expr("games + ?", 1),
					"points": gorm.Expr("points + ?", result.Score),
				}
				if err := tx.Model(&entry).Updates(updates).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Leaderboard 胜场优先、积分次之
func (g *GormPostgres) Leaderboard(limit int) ([]models.LeaderboardEntry, error) {
	var rows []LeaderboardModel
	err := g.db.Order("wins DESC, points DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.LeaderboardEntry{
			Name:   row.Name,
			Wins:   row.Wins,
			Games:  row.Games,
			Points: row.Points,
		})
	}
	return entries, nil
}

func (g *GormPostgres) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
