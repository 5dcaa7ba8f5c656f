package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"go-splendor/entities"
)

const historySchema = `CREATE TABLE IF NOT EXISTS match_results (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id     TEXT    NOT NULL,
	winner      TEXT    NOT NULL,
	turns       INTEGER NOT NULL,
	players     TEXT    NOT NULL,
	finished_at INTEGER NOT NULL
)`

// History 已结束对局的 sqlite 记录
type History struct {
	sqlDB *sql.DB
}

// OpenHistory 打开（或创建）sqlite 库并建表
func OpenHistory(ctx context.Context, dsn string) (*History, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("history dsn is required")
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// 内存库每个连接都是独立的库
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, historySchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create history table: %w", err)
	}
	return &History{sqlDB: sqlDB}, nil
}

func (h *History) Close() error {
	if h == nil || h.sqlDB == nil {
		return nil
	}
	return h.sqlDB.Close()
}

func (h *History) RecordResult(ctx context.Context, result entities.MatchResult) error {
	if strings.TrimSpace(result.RoomID) == "" {
		return fmt.Errorf("room id is required")
	}
	players, err := json.Marshal(result.Players)
	if err != nil {
		return fmt.Errorf("encode players: %w", err)
	}
	finishedAt := result.FinishedAt.UTC()
	if finishedAt.IsZero() {
		finishedAt = time.Now().UTC()
	}

	_, err = h.sqlDB.ExecContext(
		ctx,
		`INSERT INTO match_results (room_id, winner, turns, players, finished_at) VALUES (?, ?, ?, ?, ?)`,
		result.RoomID,
		result.Winner,
		result.Turns,
		string(players),
		finishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert match result: %w", err)
	}
	return nil
}

// ListResults 最近结束的对局，新的在前
func (h *History) ListResults(ctx context.Context, limit int) ([]entities.MatchResult, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := h.sqlDB.QueryContext(
		ctx,
		`SELECT room_id, winner, turns, players, finished_at FROM match_results ORDER BY finished_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query match results: %w", err)
	}
	defer rows.Close()

	results := make([]entities.MatchResult, 0)
	for rows.Next() {
		var (
			result     entities.MatchResult
			players    string
			finishedAt int64
		)
		if err := rows.Scan(&result.RoomID, &result.Winner, &result.Turns, &players, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan match result: %w", err)
		}
		if err := json.Unmarshal([]byte(players), &result.Players); err != nil {
			return nil, fmt.Errorf("decode players: %w", err)
		}
		result.FinishedAt = time.UnixMilli(finishedAt).UTC()
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate match results: %w", err)
	}
	return results, nil
}
