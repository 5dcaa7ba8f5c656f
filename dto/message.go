package dto

import (
	"go-splendor/entities"
	"go-splendor/game"
)

// ClientMessage 客户端发来的消息
type ClientMessage struct {
	Command    string         `json:"command"`
	RoomName   string         `json:"room_name"`
	Username   string         `json:"username"`
	Action     string         `json:"action,omitempty"`
	ActionArgs map[string]any `json:"action_args,omitempty"`
}

const (
	CommandCreateRoom   = "create_room"
	CommandJoinRoom     = "join_room"
	CommandBeginGame    = "begin_game"
	CommandViewRoom     = "view_room"
	CommandGetGlossary  = "get_cards_and_collections"
	CommandAction       = "action"
	MessageTypeError    = "error"
	MessageTypeInfo     = "info"
	MessageTypeSync     = "sync"
	MessageTypeGlossary = "glossary"
	MessageTypeGameOver = "game_over"
)

type ErrorMessage struct {
	Type    string `json:"type"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type InfoMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type SyncMessage struct {
	Type  string            `json:"type"`
	Room  string            `json:"room"`
	State game.VisibleState `json:"state"`
}

type GlossaryMessage struct {
	Type        string                `json:"type"`
	Cards       []entities.Card       `json:"cards"`
	Collections []entities.Collection `json:"collections"`
}

type GameOverMessage struct {
	Type   string `json:"type"`
	Room   string `json:"room"`
	Winner string `json:"winner"`
}
