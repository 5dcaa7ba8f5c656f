package entities

import "time"

type RoomInfo struct {
	RoomID     string     `json:"roomID"`
	GameStatus RoomStatus `json:"gameStatus"`
	Players    []string   `json:"players"`
	UserID     string     `json:"userID"` // 房主
	Turn       int        `json:"turn"`
	Winner     string     `json:"winner,omitempty"`
}

type RoomStatus string

const (
	RoomStatusWaiting RoomStatus = "waiting" // 等待玩家加入房间
	RoomStatusPlaying RoomStatus = "playing"
	RoomStatusEnd     RoomStatus = "end"
)

// MatchResult 一局结束后的记录
type MatchResult struct {
	RoomID     string    `json:"roomID"`
	Winner     string    `json:"winner"`
	Turns      int       `json:"turns"`
	Players    []string  `json:"players"`
	FinishedAt time.Time `json:"finishedAt"`
}
