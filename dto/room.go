package dto

import "go-splendor/entities"

type RoomInfo struct {
	RoomID     string              `json:"roomID"`
	UserID     string              `json:"userID"` // 房主
	Status     entities.RoomStatus `json:"status"`
	Players    []string            `json:"players"`
	RoomPlayer []RoomPlayer        `json:"roomPlayer"`
	Turn       int                 `json:"turn"`
	Winner     string              `json:"winner,omitempty"`
}

type RoomPlayer struct {
	PlayerID string `json:"playerID"`
	Online   bool   `json:"online"`
}

type CreateRoomRequest struct {
	RoomID string `json:"roomID"` // 为空时自动生成
	UserID string `json:"userID"` // 不为空时房主自动加入
}

type CreateRoomResponse struct {
	RoomID string `json:"roomID"`
}

type GetRoomList struct {
	Rooms []RoomInfo `json:"rooms"`
}

type HistoryQuery struct {
	Limit int `form:"limit"`
}
