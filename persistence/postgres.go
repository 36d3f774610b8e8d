// persistence/postgres.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	// PostgreSQL 驱动
	_ "github.com/lib/pq"

	"github.com/wfunc/wordparty/models"
)

// Postgres 基于 database/sql 的实现
type Postgres struct {
	db *sql.DB
}

// NewPostgres 创建 PostgreSQL 连接
func NewPostgres(host string, port int, user, password, dbname string) (*Postgres, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	// 连接池参数
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &Postgres{db: db}, nil
}

// initTables 初始化表结构
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            room_id VARCHAR(255) NOT NULL,
            categories JSONB NOT NULL,
            total_rounds INT NOT NULL,
            results JSONB NOT NULL,
            finished_at TIMESTAMP NOT NULL
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS leaderboard (
            name VARCHAR(255) PRIMARY KEY,
            wins INT NOT NULL DEFAULT 0,
            games INT NOT NULL DEFAULT 0,
            points INT NOT NULL DEFAULT 0
        )
    `)
	return err
}

// SaveGameRecord 记录一局结果并更新排行榜，同一事务内完成
func (p *Postgres) SaveGameRecord(record *models.GameRecord) error {
	categories, err := json.Marshal(record.Categories)
	if err != nil {
		return err
	}
	results, err := json.Marshal(record.Results)
	if err != nil {
		return err
	}

	tx, err := p.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        INSERT INTO game_records (room_id, categories, total_rounds, results, finished_at)
        VALUES ($1, $2, $3, $4, $5)
    `, record.RoomID, categories, record.TotalRounds, results, record.FinishedAt)
	if err != nil {
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
		_, err = tx.Exec(`
            INSERT INTO leaderboard (name, wins, games, points)
            VALUES ($1, $2, 1, $3)
            ON CONFLICT (name) DO UPDATE SET
                wins = leaderboard.wins + $2,
                games = leaderboard.games + 1,
                points = leaderboard.points + $3
        `, result.Name, won, result.Score)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Leaderboard 胜场优先、积分次之
func (p *Postgres) Leaderboard(limit int) ([]models.LeaderboardEntry, error) {
	rows, err := p.db.Query(`
        SELECT name, wins, games, points FROM leaderboard
        ORDER BY wins DESC, points DESC
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(&entry.Name, &entry.Wins, &entry.Games, &entry.Points); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
